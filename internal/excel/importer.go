package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	TopicColumn         string // Column with the topic
	SubjectColumn       string // Column with the subject
	UserAnswerColumn    string // Column with the given answer, empty when skipped
	CorrectAnswerColumn string // Column with the correct answer
	BlankColumn         string // Column with the is_blank flag, optional
	SheetName           string // Name of the sheet to import, first sheet when empty
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TopicColumn:         "A",
		SubjectColumn:       "B",
		UserAnswerColumn:    "C",
		CorrectAnswerColumn: "D",
		BlankColumn:         "E",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Err returns an error wrapping analysis.ErrInvalidInput when any row was rejected
func (r *ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d rejected rows: %s", analysis.ErrInvalidInput, len(r.Errors), strings.Join(r.Errors, "; "))
}

// ImportAttempts reads question attempts from an Excel or CSV file.
// Rows that fail validation are reported in the result and left out of the batch.
func ImportAttempts(config ImportConfig) ([]models.QuestionAttempt, *ImportResult, error) {
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	attempts := make([]models.QuestionAttempt, 0, len(rows))

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isEmptyRow(row) {
			result.Skipped++
			continue
		}

		result.TotalProcessed++

		attempt, err := parseRow(row, config)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		attempts = append(attempts, attempt)
		result.Imported++
	}

	return attempts, result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow converts a row into an attempt, rejecting missing required cells
func parseRow(row []string, config ImportConfig) (models.QuestionAttempt, error) {
	attempt := models.QuestionAttempt{
		Topic:         cell(row, config.TopicColumn),
		Subject:       cell(row, config.SubjectColumn),
		CorrectAnswer: cell(row, config.CorrectAnswerColumn),
	}

	if answer := cell(row, config.UserAnswerColumn); answer != "" {
		attempt.UserAnswer = models.Answer(answer)
	}

	blank, err := parseBool(cell(row, config.BlankColumn))
	if err != nil {
		return attempt, err
	}
	attempt.IsBlank = blank

	if err := analysis.ValidateAttempt(attempt); err != nil {
		return attempt, err
	}
	return attempt, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "false", "0", "no", "n":
		return false, nil
	case "true", "1", "yes", "y", "x":
		return true, nil
	default:
		return false, fmt.Errorf("invalid is_blank value %q", v)
	}
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
