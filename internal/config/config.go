package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Tax       TaxConfig       `yaml:"tax"`
	Rental    RentalConfig    `yaml:"rental"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// TaxConfig contains GST rates as percentages. Intra-state invoices apply
// CGST+SGST; inter-state invoices apply IGST.
type TaxConfig struct {
	CGSTRatePercent float64 `yaml:"cgst_rate_percent"`
	SGSTRatePercent float64 `yaml:"sgst_rate_percent"`
	IGSTRatePercent float64 `yaml:"igst_rate_percent"`
}

// CGSTRate returns the CGST percentage as a decimal.
func (t TaxConfig) CGSTRate() decimal.Decimal { return decimal.NewFromFloat(t.CGSTRatePercent) }

// SGSTRate returns the SGST percentage as a decimal.
func (t TaxConfig) SGSTRate() decimal.Decimal { return decimal.NewFromFloat(t.SGSTRatePercent) }

// IGSTRate returns the IGST percentage as a decimal.
func (t TaxConfig) IGSTRate() decimal.Decimal { return decimal.NewFromFloat(t.IGSTRatePercent) }

// RentalConfig contains rental lifecycle settings
type RentalConfig struct {
	QuotationValidityDays int `yaml:"quotation_validity_days"`
	InvoiceDueDays        int `yaml:"invoice_due_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireStaleQuotations string `yaml:"expire_stale_quotations"`
	FlagOverdueReturns    string `yaml:"flag_overdue_returns"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Tax defaults (standard 18% GST split)
	if c.Tax.CGSTRatePercent == 0 {
		c.Tax.CGSTRatePercent = 9
	}
	if c.Tax.SGSTRatePercent == 0 {
		c.Tax.SGSTRatePercent = 9
	}
	if c.Tax.IGSTRatePercent == 0 {
		c.Tax.IGSTRatePercent = 18
	}
	if c.Tax.CGSTRatePercent < 0 || c.Tax.SGSTRatePercent < 0 || c.Tax.IGSTRatePercent < 0 {
		return fmt.Errorf("tax rates must not be negative")
	}

	// Rental defaults
	if c.Rental.QuotationValidityDays <= 0 {
		c.Rental.QuotationValidityDays = 7
	}
	if c.Rental.InvoiceDueDays <= 0 {
		c.Rental.InvoiceDueDays = 15
	}

	// Scheduler defaults
	if c.Scheduler.ExpireStaleQuotations == "" {
		c.Scheduler.ExpireStaleQuotations = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.FlagOverdueReturns == "" {
		c.Scheduler.FlagOverdueReturns = "0 0 2 * * *" // 2 AM UTC
	}

	return nil
}

// TotalTaxRate returns the combined GST fraction applied to quotation totals.
func (c *Config) TotalTaxRate() decimal.Decimal {
	return c.Tax.CGSTRate().Add(c.Tax.SGSTRate()).Div(decimal.NewFromInt(100))
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
