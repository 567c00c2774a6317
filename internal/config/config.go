package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/invoiceforge/invoiceforge/internal/validator"

	"github.com/spf13/viper"
)

// Configuration is the process-wide configuration. The Defaults block is the
// fallback provider for invoice rendering: any invoice field left unset falls
// through to the corresponding default here.
type Configuration struct {
	Defaults DefaultsConfig `mapstructure:"defaults" validate:"required"`
	Logging  LoggingConfig  `mapstructure:"logging" validate:"required"`
}

// DefaultsConfig holds the rendering fallbacks consumed by the layout engine.
type DefaultsConfig struct {
	CompanyName    string   `mapstructure:"company_name"`
	CompanyDetails []string `mapstructure:"company_details"`
	PageSize       string   `mapstructure:"page_size" validate:"required,oneof=A3 A4 A5 Letter Legal Tabloid"`
	InvoiceLogo    string   `mapstructure:"invoice_logo"`
	Currency       string   `mapstructure:"currency" validate:"required,len=3"`
	DateFormat     string   `mapstructure:"date_format" validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

var (
	mu      sync.RWMutex
	current *Configuration
)

// NewConfig loads configuration from config.yaml and INVOICEFORGE_* env vars.
func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoiceforge")

	v.SetEnvPrefix("INVOICEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setViperDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("defaults.page_size", "A4")
	v.SetDefault("defaults.currency", "USD")
	v.SetDefault("defaults.date_format", "2006-01-02")
	v.SetDefault("logging.level", "info")
}

func (c Configuration) Validate() error {
	return validator.ValidateRequest(c)
}

// GetDefaultConfig returns a default configuration without touching the
// filesystem or environment. This is what tests and scripts start from.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Defaults: DefaultsConfig{
			PageSize:   "A4",
			Currency:   "USD",
			DateFormat: "2006-01-02",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Initialize loads the process-wide configuration. Must not be called while a
// render is in flight.
func Initialize() (*Configuration, error) {
	c, err := NewConfig()
	if err != nil {
		return nil, err
	}
	mu.Lock()
	current = c
	mu.Unlock()
	return c, nil
}

// Get returns the process-wide configuration, falling back to the built-in
// defaults when Initialize has not run.
func Get() *Configuration {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return GetDefaultConfig()
	}
	return current
}

// Set replaces the process-wide configuration. Intended for tests and for
// callers that assemble configuration themselves.
func Set(c *Configuration) {
	mu.Lock()
	current = c
	mu.Unlock()
}

// Reset restores the built-in defaults. Tests must call this between cases to
// avoid cross-test leakage.
func Reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}
