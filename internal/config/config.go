// Package config loads service settings from an optional YAML file, a .env
// file and TECHMARKET_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Statement StatementConfig `yaml:"statement"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StatementPath is where the service itself serves the statement JSON.
const StatementPath = "/api/transacoes/extrato"

// StatementConfig holds statement rendering settings. An empty Endpoint
// means the service's own StatementPath on Server.Addr.
type StatementConfig struct {
	Endpoint           string        `yaml:"endpoint"`
	Locale             string        `yaml:"locale"`
	CurrencySymbol     string        `yaml:"currency_symbol"`
	HighValueThreshold string        `yaml:"high_value_threshold"`
	Timeout            time.Duration `yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json or logfmt
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Statement: StatementConfig{
			Locale:             "pt-BR",
			CurrencySymbol:     "R$",
			HighValueThreshold: "5000",
			Timeout:            10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if non-empty) over the defaults. A missing file is an
// error only when the path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// LoadFromEnv loads a .env file if present, then the YAML file, then applies
// environment overrides.
func LoadFromEnv(path string) (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("TECHMARKET_CONFIG")
	}
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}

	if v := os.Getenv("TECHMARKET_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TECHMARKET_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("TECHMARKET_STATEMENT_ENDPOINT"); v != "" {
		cfg.Statement.Endpoint = v
	}
	if v := os.Getenv("TECHMARKET_LOCALE"); v != "" {
		cfg.Statement.Locale = v
	}
	if v := os.Getenv("TECHMARKET_CURRENCY_SYMBOL"); v != "" {
		cfg.Statement.CurrencySymbol = v
	}
	if v := os.Getenv("TECHMARKET_HIGH_VALUE_THRESHOLD"); v != "" {
		cfg.Statement.HighValueThreshold = v
	}
	if v := os.Getenv("TECHMARKET_STATEMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("TECHMARKET_STATEMENT_TIMEOUT: %w", err)
		}
		cfg.Statement.Timeout = d
	}
	if v := os.Getenv("TECHMARKET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TECHMARKET_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TECHMARKET_LOG_JSON"); v != "" {
		if on, _ := strconv.ParseBool(v); on {
			cfg.Log.Format = "json"
		}
	}

	return cfg, cfg.Validate()
}

// Threshold returns the high-value threshold as a decimal.
func (c Config) Threshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Statement.HighValueThreshold)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid high_value_threshold %q: %w", c.Statement.HighValueThreshold, err)
	}
	return d, nil
}

// StatementEndpoint returns the statement URL: Statement.Endpoint when set,
// otherwise StatementPath on the local listen address.
func (c Config) StatementEndpoint() string {
	if c.Statement.Endpoint != "" {
		return c.Statement.Endpoint
	}
	host, port, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return "http://" + c.Server.Addr + StatementPath
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + StatementPath
}

// Validate checks settings that would otherwise fail at first use.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if _, err := c.Threshold(); err != nil {
		errs = append(errs, err)
	}
	if c.Statement.Timeout < 0 {
		errs = append(errs, errors.New("statement.timeout must not be negative"))
	}
	return errors.Join(errs...)
}
