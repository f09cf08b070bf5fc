package host

import (
	"sync/atomic"

	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// consoleProxy lets the logger print to the host console before the API it
// prints through exists. Records logged earlier are not shown.
type consoleProxy struct {
	api atomic.Pointer[hostfuncs.API]
}

func (p *consoleProxy) ShowConsoleMsg(msg string) bool {
	api := p.api.Load()
	if api == nil {
		return false
	}
	return api.ShowConsoleMsg(msg)
}
