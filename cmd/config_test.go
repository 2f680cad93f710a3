package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ctax.yaml")
	content := `ledger: crypto.jsonl
inputs:
  - 2023.csv
  - 2024.csv
year: 2024
verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Ledger != "crypto.jsonl" || cfg.Year != 2024 || !cfg.Verbose {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[1] != "2024.csv" {
		t.Errorf("LoadConfig().Inputs = %v", cfg.Inputs)
	}
	if cfg.Model != DefaultConfig().Model {
		t.Errorf("LoadConfig().Model = %q, want the default %q", cfg.Model, DefaultConfig().Model)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig(optional) unexpected error: %v", err)
	}
	if cfg.Ledger != DefaultConfig().Ledger {
		t.Errorf("LoadConfig(optional).Ledger = %q, want %q", cfg.Ledger, DefaultConfig().Ledger)
	}

	if _, err := LoadConfig(path, true); err == nil {
		t.Error("LoadConfig(required) expected an error for a missing file")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctax.yaml")
	if err := os.WriteFile(path, []byte("year: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path, true); err == nil {
		t.Error("LoadConfig() expected an error for invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLedgerFile: "env.jsonl",
		EnvYear:       "2022",
		EnvVerbose:    "1",
		EnvModel:      "gemini-test",
	}
	cfg := Config{Ledger: "file.jsonl", Inputs: []string{"a.csv"}, Year: 2024}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() unexpected error: %v", err)
	}
	want := Config{Ledger: "env.jsonl", Year: 2022, Verbose: true, Model: "gemini-test"}
	if cfg.Ledger != want.Ledger || cfg.Inputs != nil || cfg.Year != want.Year || cfg.Verbose != want.Verbose || cfg.Model != want.Model {
		t.Errorf("ApplyEnv() = %+v, want %+v", cfg, want)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		EnvYear:    "last year",
		EnvVerbose: "maybe",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyEnv(func(k string) string {
				if k == name {
					return value
				}
				return ""
			})
			if err == nil {
				t.Errorf("ApplyEnv(%s=%q) expected an error", name, value)
			}
		})
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Config{Ledger: "file.jsonl", Inputs: []string{"a.csv"}, Year: 2024}
	if err := cfg.ApplyEnv(func(string) string { return "" }); err != nil {
		t.Fatalf("ApplyEnv() unexpected error: %v", err)
	}
	if cfg.Ledger != "file.jsonl" || len(cfg.Inputs) != 1 || cfg.Year != 2024 {
		t.Errorf("ApplyEnv() without variables changed the config: %+v", cfg)
	}
}
