package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/internal/scheduler"
)

type Config struct {
	// Storage
	DBType      string // sqlite or postgres
	DBPath      string
	DatabaseURL string

	// Events, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Reminders
	ReminderInterval      time.Duration
	NotificationStartHour int
	NotificationEndHour   int

	LogLevel slog.Level

	// Analysis overrides
	TopN               int
	TopicsPerWeek      int
	StudyHoursPerTopic float64
}

// Load reads the configuration from the environment, after loading .env if it exists
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}
	defaults := analysis.DefaultConfig()

	cfg := &Config{
		DBType:                strings.ToLower(p.str("DB_TYPE", database.DriverSQLite)),
		DBPath:                p.str("DB_PATH", "data/examprep.db"),
		DatabaseURL:           p.str("DATABASE_URL", ""),
		AMQPURL:               p.str("AMQP_URL", ""),
		AMQPExchange:          p.str("AMQP_EXCHANGE", "examprep.events"),
		ReminderInterval:      p.duration("REMINDER_INTERVAL", scheduler.DefaultInterval),
		NotificationStartHour: p.integer("NOTIFICATION_START_HOUR", scheduler.DefaultNotificationStartHour),
		NotificationEndHour:   p.integer("NOTIFICATION_END_HOUR", scheduler.DefaultNotificationEndHour),
		LogLevel:              p.level("LOG_LEVEL", slog.LevelInfo),
		TopN:                  p.integer("ANALYSIS_TOP_N", defaults.TopN),
		TopicsPerWeek:         p.integer("ANALYSIS_TOPICS_PER_WEEK", defaults.TopicsPerWeek),
		StudyHoursPerTopic:    p.float("ANALYSIS_STUDY_HOURS_PER_TOPIC", defaults.StudyHoursPerTopic),
	}
	if p.err != nil {
		return nil, p.err
	}

	// "sqlite" is accepted as shorthand for the driver name
	if cfg.DBType == "sqlite" {
		cfg.DBType = database.DriverSQLite
	}
	switch cfg.DBType {
	case database.DriverSQLite:
	case database.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when DB_TYPE is postgres")
		}
	default:
		return nil, fmt.Errorf("config: unsupported DB_TYPE %q", cfg.DBType)
	}

	if err := cfg.Reminders().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Analysis().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Analysis returns the default analysis configuration with the overrides applied
func (c *Config) Analysis() analysis.Config {
	a := analysis.DefaultConfig()
	a.TopN = c.TopN
	a.TopicsPerWeek = c.TopicsPerWeek
	a.StudyHoursPerTopic = c.StudyHoursPerTopic
	return a
}

// Reminders returns the reminder schedule
func (c *Config) Reminders() scheduler.Config {
	return scheduler.Config{
		Interval:  c.ReminderInterval,
		StartHour: c.NotificationStartHour,
		EndHour:   c.NotificationEndHour,
	}
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() (string, error) {
	if c.DBType == database.DriverPostgres {
		return c.DatabaseURL, nil
	}
	return database.SQLiteDSN(c.DBPath)
}

// parser keeps the first error so Load can report it after reading everything
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(k, fallback string) string {
	if v := strings.TrimSpace(p.getenv(k)); v != "" {
		return v
	}
	return fallback
}

func (p *parser) fail(k, v, kind string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("config: %s=%q is not a valid %s: %w", k, v, kind, err)
	}
}

func (p *parser) integer(k string, fallback int) int {
	v := p.str(k, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(k, v, "integer", err)
		return fallback
	}
	return n
}

func (p *parser) float(k string, fallback float64) float64 {
	v := p.str(k, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(k, v, "number", err)
		return fallback
	}
	return f
}

func (p *parser) duration(k string, fallback time.Duration) time.Duration {
	v := p.str(k, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(k, v, "duration", err)
		return fallback
	}
	return d
}

func (p *parser) level(k string, fallback slog.Level) slog.Level {
	v := p.str(k, "")
	if v == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		p.fail(k, v, "log level", err)
		return fallback
	}
	return l
}
