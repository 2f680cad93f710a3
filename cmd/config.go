package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when present, it is not an error if it is missing.
const DefaultConfigFile = "ctax.yaml"

const (
	EnvLedgerFile = "CTAX_LEDGER_FILE"
	EnvYear       = "CTAX_YEAR"
	EnvVerbose    = "CTAX_VERBOSE"
	EnvModel      = "CTAX_MODEL"
)

// Config holds the settings of a run.
type Config struct {
	// Ledger is the JSONL ledger read when no input is given.
	Ledger string `yaml:"ledger"`
	// Inputs are the files read when none is given on the command line,
	// they take precedence over Ledger.
	Inputs  []string `yaml:"inputs"`
	Year    int      `yaml:"year"`
	Verbose bool     `yaml:"verbose"`
	// Model is the Gemini model used by the assist command.
	Model string `yaml:"model"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Ledger: "ledger.jsonl",
		Model:  "gemini-2.5-flash",
	}
}

// LoadConfig reads a YAML configuration on top of the defaults.
// A missing file is only an error if required.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides the configuration with the CTAX_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLedgerFile); v != "" {
		c.Ledger = v
		c.Inputs = nil
	}
	if v := getenv(EnvYear); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvYear, v, err)
		}
		c.Year = year
	}
	if v := getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		c.Verbose = b
	}
	if v := getenv(EnvModel); v != "" {
		c.Model = v
	}
	return nil
}
