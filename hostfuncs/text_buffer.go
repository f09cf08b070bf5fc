package hostfuncs

import (
	"bytes"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// TextBuffer is a caller-owned, fixed-capacity region the host writes a
// NUL-terminated string into. Its capacity never changes after construction.
//
// A nil *TextBuffer or one with zero capacity is invalid: wrappers that take
// one return their default without calling the host.
type TextBuffer struct {
	data      []byte
	Truncated bool
}

// NewTextBuffer creates a buffer holding up to capacity bytes including the
// terminating NUL. A capacity <= 0 yields an invalid buffer.
func NewTextBuffer(capacity int) *TextBuffer {
	if capacity <= 0 {
		return &TextBuffer{}
	}
	return &TextBuffer{data: make([]byte, capacity)}
}

// NewNameBuffer creates a buffer sized for host names and formatted values.
func NewNameBuffer() *TextBuffer {
	return NewTextBuffer(entities.MaxTextLen)
}

// Valid reports whether the buffer can be handed to the host.
func (b *TextBuffer) Valid() bool {
	return b != nil && len(b.data) > 0
}

// Cap returns the capacity including the terminating NUL.
func (b *TextBuffer) Cap() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Reset empties the buffer and clears the Truncated flag.
func (b *TextBuffer) Reset() {
	if b == nil {
		return
	}
	clear(b.data)
	b.Truncated = false
}

// Write copies p after the current contents, keeping room for the NUL.
// Bytes that do not fit are discarded and Truncated is set.
func (b *TextBuffer) Write(p []byte) (n int, err error) {
	if !b.Valid() {
		if len(p) > 0 && b != nil {
			b.Truncated = true
		}
		return len(p), nil
	}

	used := b.Len()
	remaining := len(b.data) - 1 - used
	if len(p) > remaining {
		b.Truncated = true
		copy(b.data[used:], p[:remaining])
		b.data[used+remaining] = 0
		return len(p), nil // Return len(p) to avoid short write error
	}

	copy(b.data[used:], p)
	b.data[used+len(p)] = 0
	return len(p), nil
}

// Len returns the length of the string up to the first NUL.
func (b *TextBuffer) Len() int {
	if !b.Valid() {
		return 0
	}
	if i := bytes.IndexByte(b.data, 0); i >= 0 {
		return i
	}
	return len(b.data)
}

// String returns the contents up to the first NUL.
func (b *TextBuffer) String() string {
	if !b.Valid() {
		return ""
	}
	return string(b.data[:b.Len()])
}

// ptr returns the address handed to the host and its size as a C int.
func (b *TextBuffer) ptr() (*byte, int32) {
	return &b.data[0], int32(len(b.data))
}
