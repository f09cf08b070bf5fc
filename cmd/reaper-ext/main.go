// Command reaper-ext builds the bridge as a host extension library:
//
//	go build -buildmode=c-shared -o reaper_bridge.so ./cmd/reaper-ext
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/capability"
	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/host"
	bridgelog "github.com/reglet-dev/reaper-bridge/log"
)

var (
	mu  sync.Mutex
	ext *host.Extension
)

// ReaperPluginEntry is called by the host with its plugin info record on
// load and with a nil record on unload.
//
//export ReaperPluginEntry
func ReaperPluginEntry(hInstance unsafe.Pointer, rec unsafe.Pointer) C.int {
	mu.Lock()
	defer mu.Unlock()

	if rec == nil {
		if ext != nil {
			_ = ext.Close()
			ext = nil
			bridgelog.SetLogger(nil)
		}
		return 0
	}
	if ext != nil {
		return 1
	}

	info := *(*entities.PluginInfo)(rec)
	loaded, err := host.Load(&info, host.WithTable(capability.Default()))
	if err != nil {
		bridgelog.L().Error("extension failed to load", zap.Error(err))
		return 0
	}
	bridgelog.SetLogger(loaded.Logger)
	ext = loaded
	return 1
}

func main() {}
