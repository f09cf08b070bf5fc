package config

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, entities.MaxTextLen, cfg.Batch.TextCapacity)
	assert.Equal(t, "reaper-bridge", cfg.State.Section)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestParse(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
log:
  level: debug
  console: false
batch:
  max_parameters: 128
metrics:
  enabled: true
`))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.False(t, cfg.Log.Console)
		assert.True(t, cfg.Log.Enabled, "unset fields keep defaults")
		assert.Equal(t, 128, cfg.Batch.MaxParameters)
		assert.Equal(t, entities.MaxTextLen, cfg.Batch.TextCapacity)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("empty document is default", func(t *testing.T) {
		cfg, err := Parse([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse([]byte("batch:\n  max_params: 3\n"))
		var cfgErr *errors.ConfigError
		require.True(t, stdErrors.As(err, &cfgErr))
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		_, err := Parse([]byte(`
log:
  level: loud
batch:
  text_capacity: 4
state:
  section: ""
`))
		require.Error(t, err)
		errs := multierr.Errors(err)
		require.Len(t, errs, 3)

		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			var cfgErr *errors.ConfigError
			require.True(t, stdErrors.As(e, &cfgErr))
			fields = append(fields, cfgErr.Field)
		}
		assert.ElementsMatch(t, []string{
			"Config.Log.Level",
			"Config.Batch.TextCapacity",
			"Config.State.Section",
		}, fields)
		assert.Equal(t, errors.ClassConfig, errors.Classify(errs[0]))
	})

	t.Run("log path required when enabled", func(t *testing.T) {
		_, err := Parse([]byte("log:\n  path: \"\"\n"))
		assert.ErrorContains(t, err, "Config.Log.Path")

		cfg, err := Parse([]byte("log:\n  enabled: false\n  path: \"\"\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Log.Enabled)
	})
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is default", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("round trip", func(t *testing.T) {
		want := Default()
		want.Batch.MaxParameters = 64
		want.State.Section = "my-ext"
		data, err := Marshal(want)
		require.NoError(t, err)

		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unreadable path", func(t *testing.T) {
		_, err := Load(dir) // a directory
		assert.Error(t, err)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())

	t.Setenv(EnvPath, "")
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "reaper-bridge configuration", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"log", "batch", "state", "metrics"} {
		assert.Contains(t, props, key)
	}
	assert.Contains(t, string(data), `"max_parameters"`)
	assert.Contains(t, string(data), `"debug"`)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Config, 8)
	failures := make(chan error, 8)
	require.NoError(t, Watch(ctx, path, nil, func(cfg *Config, err error) {
		if err != nil {
			failures <- err
			return
		}
		updates <- cfg
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	// A truncating write can be observed half-way, so wait for the final state.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Log.Level == "debug" {
				return
			}
		case <-failures:
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), nil, func(*Config, error) {})
	assert.Error(t, err)
}
