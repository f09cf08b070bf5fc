package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveError(t *testing.T) {
	err := &ResolveError{Name: "TrackFX_GetParam"}
	assert.Equal(t, "resolve TrackFX_GetParam: host returned no entry point", err.Error())
	assert.Equal(t, ClassStructural, Classify(err))

	wrapped := &ResolveError{Name: "TrackFX_GetParam", Err: ErrNotBootstrapped}
	assert.True(t, errors.Is(wrapped, ErrNotBootstrapped))
	assert.Contains(t, wrapped.Error(), "bootstrap")
}

func TestInvalidInputError(t *testing.T) {
	err := &InvalidInputError{Op: "batch_read", Field: "target", Reason: "null handle"}
	assert.Equal(t, "batch_read: invalid target: null handle", err.Error())

	noOp := &InvalidInputError{Field: "capacity", Reason: "must be positive"}
	assert.Equal(t, "invalid capacity: must be positive", noOp.Error())
	assert.Equal(t, ClassInvalidInput, Classify(noOp))
}

func TestItemError(t *testing.T) {
	err := &ItemError{Op: "TrackFX_SetParam", Index: 2, Reason: "host rejected value"}
	assert.Equal(t, "TrackFX_SetParam item 2: host rejected value", err.Error())
	assert.Equal(t, ClassItem, Classify(err))
	assert.False(t, IsStructural(err))
}

func TestSignatureError(t *testing.T) {
	err := &SignatureError{Name: "TrackFX_GetCount", Want: "func(uintptr) int32", Got: "func(uintptr) int"}
	assert.Equal(t, "signature for TrackFX_GetCount: want func(uintptr) int32, got func(uintptr) int", err.Error())

	unknown := &SignatureError{Name: "Nope"}
	assert.Contains(t, unknown.Error(), "not in the catalog")
	assert.True(t, IsStructural(unknown))
}

func TestBindError(t *testing.T) {
	base := fmt.Errorf("unsupported type")
	err := &BindError{Name: "GetExtState", Err: base}
	assert.Equal(t, "bind GetExtState: unsupported type", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be positive")
	err := &ConfigError{Field: "batch.max_parameters", Err: baseErr}

	assert.Equal(t, "config validation failed for field 'batch.max_parameters': must be positive", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "batch.max_parameters", cfgErr.Field)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Class
	}{
		{name: "nil", err: nil, want: ""},
		{name: "sentinel", err: ErrNotBootstrapped, want: ClassStructural},
		{name: "wrapped sentinel", err: fmt.Errorf("batch read: %w", ErrNotBootstrapped), want: ClassStructural},
		{name: "wrapped resolve", err: fmt.Errorf("batch: %w", &ResolveError{Name: "x"}), want: ClassStructural},
		{name: "config", err: &ConfigError{Err: errors.New("bad")}, want: ClassConfig},
		{name: "plain", err: errors.New("boom"), want: ClassInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
