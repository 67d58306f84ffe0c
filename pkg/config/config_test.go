package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/psantana5/fnmon/pkg/logging"
)

func TestDefaults(t *testing.T) {
	cfg := Load()

	if !cfg.ValidateInput || !cfg.ValidateOutput || !cfg.LogExecution {
		t.Errorf("Expected validation and logging enabled by default: %+v", cfg)
	}
	if cfg.ReturnRawResult {
		t.Error("Raw result mode must default to off")
	}
	if cfg.LogLevel() != logging.DEBUG {
		t.Errorf("Default verbosity 10 should map to DEBUG, got %s", cfg.LogLevel())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VALIDATE_INPUT", "false")
	t.Setenv("LOG_EXECUTION", "0")
	t.Setenv("RAW_RESULT", "true")
	t.Setenv("LOG_LEVEL", "20")

	cfg := Load()

	if cfg.ValidateInput {
		t.Error("VALIDATE_INPUT=false must disable input validation")
	}
	if cfg.LogExecution {
		t.Error("LOG_EXECUTION=0 must disable logging")
	}
	if !cfg.ReturnRawResult {
		t.Error("RAW_RESULT=true must enable raw mode")
	}
	if cfg.LogLevel() != logging.INFO {
		t.Errorf("LOG_LEVEL=20 should map to INFO, got %s", cfg.LogLevel())
	}
}

func TestBooleanStringsAreParsed(t *testing.T) {
	// The literal text "False" is false, not a truthy non-empty string.
	t.Setenv("VALIDATE_OUTPUT", "False")

	cfg := Load()
	if cfg.ValidateOutput {
		t.Error(`VALIDATE_OUTPUT="False" must parse as false`)
	}
}

func TestOptionsConversion(t *testing.T) {
	cfg := Default()
	cfg.ValidateInput = false
	cfg.ReturnRawResult = true

	opts := cfg.Options()
	if opts.ValidateInput {
		t.Error("Options must carry ValidateInput over")
	}
	if !opts.ReturnRawResult {
		t.Error("Options must carry ReturnRawResult over")
	}
	if !opts.ValidateOutput || !opts.LogExecution {
		t.Errorf("Untouched fields must keep defaults: %+v", opts)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fnmon.yaml")
	body := []byte("validate_input: false\nlog_verbosity: 30\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ValidateInput {
		t.Error("File must disable input validation")
	}
	if cfg.LogLevel() != logging.WARN {
		t.Errorf("log_verbosity 30 should map to WARN, got %s", cfg.LogLevel())
	}
	// Fields absent from the file keep their defaults.
	if !cfg.ValidateOutput {
		t.Error("Absent fields must keep defaults")
	}
}

func TestLoadFileEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fnmon.yaml")
	if err := os.WriteFile(path, []byte("validate_input: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("VALIDATE_INPUT", "false")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ValidateInput {
		t.Error("Environment must override the file value")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/fnmon.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
