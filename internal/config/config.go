/*
PURPOSE:
  Defines the configuration structure and loading logic for Complexity Runner.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the algorithm, input order and size range.
  - Allow configuration of output files and chart dimensions.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support .env files and environment overrides (COMPLEXITY_...).
  - Size range rules are shared with the interactive form (internal/params).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli
  - Dependencies: gopkg.in/yaml.v3, github.com/joho/godotenv,
    github.com/go-playground/validator/v10

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file is not an error; defaults are used.
  - Validate() reports the first failing rule.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml and validate.
  - Defaults: Linear Search, sizes 100..10000 step 500, random order.
  - Precedence: defaults < file < environment < flags.

USAGE:
  cfg, err := config.Load("complexity.yaml")
  p, err := cfg.RunParameters()

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and envVars.

RELATED FILES:
  - internal/cli/root.go
  - internal/params/validate.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/model"
	"github.com/daryltucker/complexity-runner/internal/params"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COMPLEXITY_"

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"complexity.yaml", "complexity_runner.yaml", "runner.yaml"}

// Config represents the full configuration for Complexity Runner.
type Config struct {
	Algorithm string `yaml:"algorithm" validate:"required"`
	MinSize   int    `yaml:"min_size"`
	MaxSize   int    `yaml:"max_size"`
	Step      int    `yaml:"step"`
	Order     string `yaml:"order" validate:"required"`
	// Seed fixes the input generator; 0 seeds from entropy.
	Seed uint64 `yaml:"seed"`

	MaxElements       int `yaml:"max_elements" validate:"gte=0"`
	MaxRecursionDepth int `yaml:"max_recursion_depth" validate:"gte=0"`

	OutputDir string `yaml:"output_dir"`
	// Empty file names disable the corresponding output.
	CSVFile     string `yaml:"csv_file"`
	JSONFile    string `yaml:"json_file"`
	ChartFile   string `yaml:"chart_file"`
	MetricsFile string `yaml:"metrics_file"`
	ChartWidth  int    `yaml:"chart_width" validate:"gt=100"`
	ChartHeight int    `yaml:"chart_height" validate:"gt=100"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Algorithm:         algo.LinearSearch.String(),
		MinSize:           100,
		MaxSize:           10000,
		Step:              500,
		Order:             input.Random.String(),
		MaxElements:       input.DefaultMaxElements,
		MaxRecursionDepth: algo.DefaultMaxDepth,
		OutputDir:         ".",
		CSVFile:           "complexity_results.csv",
		JSONFile:          "complexity_results.jsonl",
		ChartFile:         "complexity_chart.png",
		ChartWidth:        400,
		ChartHeight:       300,
		LogLevel:          "warn",
		LogFormat:         "text",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// envVars maps environment variable suffixes to config fields.
func (c *Config) envVars() map[string]any {
	return map[string]any{
		"ALGORITHM":           &c.Algorithm,
		"MIN_SIZE":            &c.MinSize,
		"MAX_SIZE":            &c.MaxSize,
		"STEP":                &c.Step,
		"ORDER":               &c.Order,
		"SEED":                &c.Seed,
		"MAX_ELEMENTS":        &c.MaxElements,
		"MAX_RECURSION_DEPTH": &c.MaxRecursionDepth,
		"OUTPUT_DIR":          &c.OutputDir,
		"CSV_FILE":            &c.CSVFile,
		"JSON_FILE":           &c.JSONFile,
		"CHART_FILE":          &c.ChartFile,
		"METRICS_FILE":        &c.MetricsFile,
		"CHART_WIDTH":         &c.ChartWidth,
		"CHART_HEIGHT":        &c.ChartHeight,
		"LOG_LEVEL":           &c.LogLevel,
		"LOG_FORMAT":          &c.LogFormat,
	}
}

// ApplyEnv overrides fields from COMPLEXITY_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for suffix, field := range c.envVars() {
		name := EnvPrefix + suffix
		v, ok := lookup(name)
		if !ok {
			continue
		}
		switch f := field.(type) {
		case *string:
			*f = v
		case *int:
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*f = n
		case *uint64:
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*f = n
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the size range, then the remaining fields.
func (c *Config) Validate() error {
	if err := params.Check(params.FromInts(c.MinSize, c.MaxSize, c.Step)).Err(); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := algo.Parse(c.Algorithm); err != nil {
		return err
	}
	if _, err := input.ParseOrder(c.Order); err != nil {
		return err
	}
	return nil
}

// RunParameters validates c and converts it for the engine.
func (c *Config) RunParameters() (model.RunParameters, error) {
	if err := c.Validate(); err != nil {
		return model.RunParameters{}, err
	}
	id, _ := algo.Parse(c.Algorithm)
	order, _ := input.ParseOrder(c.Order)
	return model.RunParameters{
		Algorithm: id,
		MinSize:   c.MinSize,
		MaxSize:   c.MaxSize,
		Step:      c.Step,
		Order:     order,
	}, nil
}

// OutputPath joins name onto OutputDir. Empty names stay empty and absolute
// names are returned unchanged.
func (c *Config) OutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
