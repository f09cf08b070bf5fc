package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/application/config"
	"github.com/reglet-dev/reaper-bridge/capability"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// loadConfig holds configuration for Load.
type loadConfig struct {
	binder     ports.Binder
	logger     *zap.Logger
	cfg        *config.Config
	configPath string
	registry   prometheus.Registerer
	table      *capability.Table
	watch      bool
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		configPath: config.DefaultPath(),
		registry:   prometheus.DefaultRegisterer,
		watch:      true,
	}
}

// Option configures Load.
type Option func(*loadConfig)

// WithBinder replaces the native binder, typically with a test double.
func WithBinder(b ports.Binder) Option {
	return func(c *loadConfig) {
		c.binder = b
	}
}

// WithLogger uses l instead of building a logger from the configuration.
func WithLogger(l *zap.Logger) Option {
	return func(c *loadConfig) {
		c.logger = l
	}
}

// WithConfig uses cfg instead of reading the configuration file.
// The file is not watched in that case.
func WithConfig(cfg *config.Config) Option {
	return func(c *loadConfig) {
		c.cfg = cfg
	}
}

// WithConfigPath reads the configuration from path.
func WithConfigPath(path string) Option {
	return func(c *loadConfig) {
		if path != "" {
			c.configPath = path
		}
	}
}

// WithMetricsRegistry registers metrics with r when metrics are enabled.
// The default is the Prometheus default registerer.
func WithMetricsRegistry(r prometheus.Registerer) Option {
	return func(c *loadConfig) {
		c.registry = r
	}
}

// WithTable resolves through t, for example capability.Default(), instead
// of a table private to the extension.
func WithTable(t *capability.Table) Option {
	return func(c *loadConfig) {
		c.table = t
	}
}

// WithWatch enables or disables reloading the log level when the
// configuration file changes. Enabled by default.
func WithWatch(enabled bool) Option {
	return func(c *loadConfig) {
		c.watch = enabled
	}
}
