package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/internal/event"
	"github.com/example/examprep/internal/excel"
	"github.com/example/examprep/pkg/models"
)

func openDB() (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg.DBType, dsn)
}

// newAnalyzer returns an analyzer from the loaded configuration, with topN overriding TopN when positive
func newAnalyzer(topN int) (*analysis.Analyzer, error) {
	c := cfg.Analysis()
	if topN > 0 {
		c.TopN = topN
	}
	return analysis.NewAnalyzer(c)
}

// openPublisher returns nil when no broker is configured
func openPublisher() (*event.Publisher, error) {
	if cfg.AMQPURL == "" {
		return nil, nil
	}
	return event.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
}

// readAttempts imports a spreadsheet and refuses batches with rejected rows
func readAttempts(path, sheet string) ([]models.QuestionAttempt, error) {
	ic := excel.DefaultImportConfig()
	ic.FilePath = path
	ic.SheetName = sheet

	attempts, result, err := excel.ImportAttempts(ic)
	if err != nil {
		return nil, err
	}
	logger.Debug("imported attempts", "file", path,
		"processed", result.TotalProcessed, "imported", result.Imported, "skipped", result.Skipped)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return attempts, nil
}

// loadAttempts reads attempts from a file, or from a stored exam when examID is set
func loadAttempts(ctx context.Context, path, sheet, examID string) ([]models.QuestionAttempt, error) {
	switch {
	case path != "" && examID != "":
		return nil, fmt.Errorf("use either a file or an exam id, not both")
	case path != "":
		return readAttempts(path, sheet)
	case examID != "":
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		defer db.Close()

		if _, err := database.NewExamRecordRepository(db).Get(ctx, examID); err != nil {
			return nil, err
		}
		return database.NewAttemptRepository(db).ListByExam(ctx, examID)
	default:
		return nil, fmt.Errorf("a file or an exam id is required")
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
