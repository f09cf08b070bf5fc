package hostfuncs

import (
	stdErrors "errors"
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/reaper-bridge/domain/errors"
)

func TestNewCatalog(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		c, err := NewCatalog()
		require.NoError(t, err)
		assert.Empty(t, c.Names())
	})

	t.Run("single signature", func(t *testing.T) {
		c, err := NewCatalog(WithSignature(SignatureOf[func(uintptr) int32]("CountTracks")))
		require.NoError(t, err)
		assert.True(t, c.Has("CountTracks"))
		assert.False(t, c.Has("Missing"))
	})

	t.Run("duplicate name returns error", func(t *testing.T) {
		_, err := NewCatalog(
			WithSignature(SignatureOf[func()]("dup")),
			WithSignature(SignatureOf[func(int32)]("dup")),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate operation name")
	})

	t.Run("empty name returns error", func(t *testing.T) {
		_, err := NewCatalog(WithSignature(SignatureOf[func()]("")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("non-function type returns error", func(t *testing.T) {
		_, err := NewCatalog(WithSignature(SignatureOf[int]("num")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "function type")
	})
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	ops := []string{
		OpGetFunc, OpShowConsoleMsg, OpShowMessageBox, OpGetUserInputs,
		OpUndoBeginBlock2, OpUndoEndBlock2,
		OpGetExtState, OpSetExtState, OpHasExtState, OpDeleteExtState,
		OpCountSelectedTracks, OpGetSelectedTrack, OpGetTrackName, OpGetMediaTrackInfoValue,
		OpTrackFXGetCount, OpTrackFXGetFXName, OpTrackFXGetNumParams, OpTrackFXGetParamName,
		OpTrackFXGetParam, OpTrackFXGetFormattedParamValue, OpTrackFXSetParam, OpTrackFXFormatParamValue,
	}
	for _, op := range ops {
		assert.True(t, c.Has(op), "missing %s", op)
	}

	names := c.Names()
	assert.Len(t, names, len(ops))
	assert.True(t, sort.StringsAreSorted(names))

	sig, ok := c.Lookup(OpTrackFXGetParam)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[TrackFXGetParamFunc](), sig.Type)
}

func TestCatalog_NamesReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	names := c.Names()
	names[0] = "mutated"
	assert.NotEqual(t, "mutated", c.Names()[0])
}

func TestCatalog_Check(t *testing.T) {
	c := DefaultCatalog()

	require.NoError(t, c.Check(OpTrackFXGetNumParams, reflect.TypeFor[func(uintptr, int32) int32]()))

	err := c.Check(OpTrackFXGetNumParams, reflect.TypeFor[func(uintptr, int64) int32]())
	var sigErr *errors.SignatureError
	require.True(t, stdErrors.As(err, &sigErr))
	assert.Equal(t, OpTrackFXGetNumParams, sigErr.Name)
	assert.Equal(t, "func(uintptr, int32) int32", sigErr.Want)
	assert.Equal(t, "func(uintptr, int64) int32", sigErr.Got)

	err = c.Check("TrackFX_Delete", reflect.TypeFor[func()]())
	require.True(t, stdErrors.As(err, &sigErr))
	assert.Empty(t, sigErr.Want)
	assert.True(t, errors.IsStructural(err))
}

func TestWithBundle(t *testing.T) {
	c, err := NewCatalog(WithBundle(UndoBundle()), WithBundle(ExtStateBundle()))
	require.NoError(t, err)
	assert.Equal(t, []string{
		OpDeleteExtState, OpGetExtState, OpHasExtState, OpSetExtState,
		OpUndoBeginBlock2, OpUndoEndBlock2,
	}, c.Names())

	_, err = NewCatalog(WithBundle(UIBundle()), WithBundle(UIBundle()))
	require.Error(t, err)
}
