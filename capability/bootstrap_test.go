package capability

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

func TestBootstrap_FirstNonNilWins(t *testing.T) {
	var b Bootstrap
	assert.False(t, b.IsSet())
	assert.Equal(t, entities.Proc(0), b.Get())

	assert.False(t, b.Set(0))
	assert.False(t, b.IsSet())

	assert.True(t, b.Set(0x1000))
	assert.False(t, b.Set(0x2000))
	assert.Equal(t, entities.Proc(0x1000), b.Get())
}

func TestBootstrap_ConcurrentSet(t *testing.T) {
	var b Bootstrap
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 1; i <= 32; i++ {
		wg.Add(1)
		go func(p entities.Proc) {
			defer wg.Done()
			if b.Set(p) {
				wins.Add(1)
			}
		}(entities.Proc(i * 0x10))
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.True(t, b.IsSet())
}
