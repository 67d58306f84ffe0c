// Package config loads wrapper defaults from the process environment and
// optionally from a YAML file. Boolean env values are parsed deliberately:
// "false", "False" and "0" are false, unlike the usual truthy-string trap.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/fnmon/pkg/logging"
	"github.com/psantana5/fnmon/pkg/monitor"
)

// Config holds the process-wide wrapper defaults
type Config struct {
	ValidateInput   bool `yaml:"validate_input"`
	ValidateOutput  bool `yaml:"validate_output"`
	LogExecution    bool `yaml:"log_execution"`
	ReturnRawResult bool `yaml:"return_raw_result"`

	// LogVerbosity is a numeric threshold: 10=debug, 20=info, 30=warn,
	// 40=error. Matches the LOG_LEVEL env convention.
	LogVerbosity int `yaml:"log_verbosity"`
}

// Default returns the documented defaults
func Default() Config {
	return Config{
		ValidateInput:   true,
		ValidateOutput:  true,
		LogExecution:    true,
		ReturnRawResult: false,
		LogVerbosity:    10,
	}
}

// Load reads defaults from the environment. Absent variables keep the
// documented defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("validate_input", true)
	v.SetDefault("validate_output", true)
	v.SetDefault("log_execution", true)
	v.SetDefault("raw_result", false)
	v.SetDefault("log_level", 10)

	v.BindEnv("validate_input", "VALIDATE_INPUT")
	v.BindEnv("validate_output", "VALIDATE_OUTPUT")
	v.BindEnv("log_execution", "LOG_EXECUTION")
	v.BindEnv("raw_result", "RAW_RESULT")
	v.BindEnv("log_level", "LOG_LEVEL")

	return Config{
		ValidateInput:   v.GetBool("validate_input"),
		ValidateOutput:  v.GetBool("validate_output"),
		LogExecution:    v.GetBool("log_execution"),
		ReturnRawResult: v.GetBool("raw_result"),
		LogVerbosity:    v.GetInt("log_level"),
	}
}

// LoadFile reads a YAML config file, then lets the environment override it
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return overrideFromEnv(cfg), nil
}

// overrideFromEnv applies env vars on top of file values
func overrideFromEnv(cfg Config) Config {
	v := viper.New()
	v.AutomaticEnv()

	if v.IsSet("VALIDATE_INPUT") {
		cfg.ValidateInput = v.GetBool("VALIDATE_INPUT")
	}
	if v.IsSet("VALIDATE_OUTPUT") {
		cfg.ValidateOutput = v.GetBool("VALIDATE_OUTPUT")
	}
	if v.IsSet("LOG_EXECUTION") {
		cfg.LogExecution = v.GetBool("LOG_EXECUTION")
	}
	if v.IsSet("RAW_RESULT") {
		cfg.ReturnRawResult = v.GetBool("RAW_RESULT")
	}
	if v.IsSet("LOG_LEVEL") {
		cfg.LogVerbosity = v.GetInt("LOG_LEVEL")
	}
	return cfg
}

// Options converts the config into wrapper options
func (c Config) Options() monitor.Options {
	opts := monitor.DefaultOptions()
	opts.ValidateInput = c.ValidateInput
	opts.ValidateOutput = c.ValidateOutput
	opts.LogExecution = c.LogExecution
	opts.ReturnRawResult = c.ReturnRawResult
	return opts
}

// LogLevel maps the numeric verbosity threshold to a logging level
func (c Config) LogLevel() logging.Level {
	return logging.LevelFromVerbosity(c.LogVerbosity)
}
