package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the project configuration under basePath.
func Load(basePath string) (*Config, error) {
	path := filepath.Join(basePath, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &cfg, nil
}

// LoadCreds reads and validates the credentials file under basePath.
func LoadCreds(basePath string) (*Creds, error) {
	path := filepath.Join(basePath, CredsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials %s: %w", path, err)
	}

	var creds Creds
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", path, err)
	}

	if errs := ValidateCreds(&creds); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &creds, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}
	if cfg.Jobs < 0 {
		errs = append(errs, fmt.Sprintf("'jobs' must not be negative (got %d)", cfg.Jobs))
	}
	return errs
}

// ValidateCreds checks a Creds for semantic correctness.
func ValidateCreds(creds *Creds) []string {
	var errs []string

	switch creds.Protocol {
	case ProtocolFTP:
		if creds.Server == "" {
			errs = append(errs, "'server' is required for the ftp protocol")
		}
	case ProtocolLocal:
		if creds.BasePath == "" {
			errs = append(errs, "'base_path' is required for the local protocol")
		}
	case "":
		errs = append(errs, "'protocol' is required — must be one of: ftp, local")
	default:
		errs = append(errs, fmt.Sprintf("invalid protocol '%s' — must be one of: ftp, local", creds.Protocol))
	}
	return errs
}
