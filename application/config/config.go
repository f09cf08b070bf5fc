// Package config loads, validates and watches the extension's YAML
// configuration file.
package config

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "REAPER_BRIDGE_CONFIG"

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

// Config is the extension's configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" json:"log"`
	Batch   BatchConfig   `yaml:"batch" json:"batch"`
	State   StateConfig   `yaml:"state" json:"state"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// LogConfig controls the log file and console forwarding.
type LogConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   string `yaml:"level" json:"level" validate:"oneof=error warn info debug" jsonschema:"enum=error,enum=warn,enum=info,enum=debug"`
	Path    string `yaml:"path" json:"path" validate:"required_if=Enabled true"`
	Console bool   `yaml:"console" json:"console"`
}

// BatchConfig tunes the batch engines.
type BatchConfig struct {
	// MaxParameters caps parameters read per target; 0 means no cap.
	MaxParameters int `yaml:"max_parameters" json:"max_parameters" validate:"gte=0,lte=65536" jsonschema:"minimum=0,maximum=65536"`

	// TextCapacity is the size of name and display-text buffers.
	TextCapacity int `yaml:"text_capacity" json:"text_capacity" validate:"gte=16,lte=4096" jsonschema:"minimum=16,maximum=4096"`
}

// StateConfig selects the persisted state namespace.
type StateConfig struct {
	Section string `yaml:"section" json:"section" validate:"required,max=64,excludesall=/" jsonschema:"minLength=1,maxLength=64"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Enabled: true,
			Level:   "info",
			Path:    filepath.Join(DefaultDir(), "reaper-bridge.log"),
			Console: true,
		},
		Batch: BatchConfig{
			MaxParameters: 0,
			TextCapacity:  entities.MaxTextLen,
		},
		State: StateConfig{
			Section: "reaper-bridge",
		},
	}
}

// DefaultDir is the directory holding the config file and the log.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "reaper-bridge")
	}
	return filepath.Join(home, ".reaper-bridge")
}

// DefaultPath returns $REAPER_BRIDGE_CONFIG, or config.yaml in DefaultDir.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads and validates the file at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if stdErrors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, &errors.ConfigError{Err: fmt.Errorf("decode yaml: %w", err)}
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its validation tags. Every violated field is
// reported as a *errors.ConfigError, combined into one error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &errors.ConfigError{Err: fmt.Errorf("config is nil")}
	}
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		return &errors.ConfigError{Err: err}
	}

	var combined error
	for _, fe := range verrs {
		combined = multierr.Append(combined, &errors.ConfigError{
			Field: fe.Namespace(),
			Err:   fmt.Errorf("failed on %q rule", fe.Tag()),
		})
	}
	return combined
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
