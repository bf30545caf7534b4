package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	Alerts    AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	APIToken string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the Google Sheets report export.
// Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets export should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings for the daily report.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// AlertsConfig holds settings for the low-stock/expiry alert sweep.
type AlertsConfig struct {
	WebhookURL        string
	CronSchedule      string
	LowStockThreshold float64
	ExpiryWindowDays  int
}

// Enabled reports whether alerts should be delivered.
func (c AlertsConfig) Enabled() bool { return c.WebhookURL != "" }

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := getenvFloat("ALERT_LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	expiryWindow, err := getenvInt("ALERT_EXPIRY_WINDOW_DAYS", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			APIToken: os.Getenv("API_TOKEN"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "eelfarm"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Ho_Chi_Minh"),
		},
		Alerts: AlertsConfig{
			WebhookURL:        os.Getenv("ALERT_WEBHOOK_URL"),
			CronSchedule:      getenvWithDefault("ALERT_CRON_SCHEDULE", "0 7 * * *"),
			LowStockThreshold: threshold,
			ExpiryWindowDays:  expiryWindow,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Server.APIToken == "" {
		return errors.New("API_TOKEN must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// The Sheets export is optional but must be configured as a pair.
	if c.Sheets.CredentialsPath != "" || c.Sheets.SpreadsheetID != "" {
		if !c.Sheets.Enabled() {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Alerts.LowStockThreshold < 0 {
		return errors.New("ALERT_LOW_STOCK_THRESHOLD must not be negative")
	}
	if c.Alerts.ExpiryWindowDays < 0 {
		return errors.New("ALERT_EXPIRY_WINDOW_DAYS must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return parsed, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
