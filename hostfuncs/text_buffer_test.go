package hostfuncs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

func TestTextBuffer(t *testing.T) {
	t.Run("write within capacity", func(t *testing.T) {
		b := NewTextBuffer(16)
		n, err := b.Write([]byte("hello"))
		assert.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "hello", b.String())
		assert.False(t, b.Truncated)
	})

	t.Run("write keeps room for the terminator", func(t *testing.T) {
		b := NewTextBuffer(4)
		n, err := b.Write([]byte("hello"))
		assert.NoError(t, err)
		assert.Equal(t, 5, n) // Reports full length
		assert.Equal(t, "hel", b.String())
		assert.True(t, b.Truncated)
	})

	t.Run("writes append", func(t *testing.T) {
		b := NewTextBuffer(8)
		_, _ = b.Write([]byte("ab"))
		_, _ = b.Write([]byte("cd"))
		assert.Equal(t, "abcd", b.String())
		assert.Equal(t, 4, b.Len())
	})

	t.Run("reset empties and clears flag", func(t *testing.T) {
		b := NewTextBuffer(4)
		_, _ = b.Write([]byte("hello"))
		b.Reset()
		assert.Equal(t, "", b.String())
		assert.False(t, b.Truncated)
		assert.Equal(t, 4, b.Cap())
	})

	t.Run("invalid buffers", func(t *testing.T) {
		var nilBuf *TextBuffer
		assert.False(t, nilBuf.Valid())
		assert.Equal(t, "", nilBuf.String())
		assert.Equal(t, 0, nilBuf.Cap())
		nilBuf.Reset()

		empty := NewTextBuffer(0)
		assert.False(t, empty.Valid())
		_, _ = empty.Write([]byte("x"))
		assert.True(t, empty.Truncated)
		assert.Equal(t, "", empty.String())
	})

	t.Run("name buffer has host size", func(t *testing.T) {
		assert.Equal(t, entities.MaxTextLen, NewNameBuffer().Cap())
	})
}
