package testutil

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

const trackBase = 0x55000000

// Param is one effect parameter of the fake session.
type Param struct {
	Name  string
	Value float64
	Min   float64
	Max   float64

	// Locked makes TrackFX_SetParam fail for this parameter.
	Locked bool

	// Unformattable makes both formatting operations fail.
	Unformattable bool
}

// Effect is one effect instance on a fake track.
type Effect struct {
	Name   string
	Params []*Param
}

// Track is a fake host track.
type Track struct {
	Name     string
	Effects  []*Effect
	Selected bool
	Volume   float64
}

// Session is a fake project: tracks, effects, ext state, undo history and
// console output. Install publishes its operations on a FakeHost.
type Session struct {
	mu       sync.Mutex
	tracks   map[entities.Target]*Track
	order    []entities.Target
	extState map[string]string
	persist  map[string]bool
	Undo     []string
	Console  []string
}

// NewSession creates an empty fake project.
func NewSession() *Session {
	return &Session{
		tracks:   make(map[entities.Target]*Track),
		extState: make(map[string]string),
		persist:  make(map[string]bool),
	}
}

// AddTrack adds tr and returns its handle.
func (s *Session) AddTrack(tr *Track) entities.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := entities.Target(trackBase + 0x100*uintptr(len(s.order)+1))
	s.tracks[h] = tr
	s.order = append(s.order, h)
	return h
}

// Track returns the track behind h.
func (s *Session) Track(h entities.Target) *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracks[h]
}

// ExtState returns the raw stored value for section/key.
func (s *Session) ExtState(section, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.extState[section+"/"+key]
	return v, ok
}

// Persisted reports whether section/key was last written with persist set.
func (s *Session) Persisted(section, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist[section+"/"+key]
}

// NewEffect builds an effect with n parameters named "<prefix> <i>" and
// values i/n over the range 0..1.
func NewEffect(name string, n int) *Effect {
	fx := &Effect{Name: name}
	for i := range n {
		fx.Params = append(fx.Params, &Param{
			Name:  fmt.Sprintf("Param %d", i),
			Value: float64(i) / float64(max(n, 1)),
			Min:   0,
			Max:   1,
		})
	}
	return fx
}

// FormatValue is how the fake host renders a parameter value.
func FormatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// WriteCString copies s into the host-style buffer (buf, size), truncating
// and always NUL terminating. It returns false if nothing can be written.
func WriteCString(buf *byte, size int32, s string) bool {
	if buf == nil || size <= 0 {
		return false
	}
	dst := unsafe.Slice(buf, int(size))
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return true
}

// ReadCString reads the NUL-terminated contents of (buf, size).
func ReadCString(buf *byte, size int32) string {
	if buf == nil || size <= 0 {
		return ""
	}
	src := unsafe.Slice(buf, int(size))
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}

func (s *Session) effect(track uintptr, fx int32) *Effect {
	tr := s.tracks[entities.Target(track)]
	if tr == nil || fx < 0 || int(fx) >= len(tr.Effects) {
		return nil
	}
	return tr.Effects[fx]
}

func (s *Session) param(track uintptr, fx, param int32) *Param {
	e := s.effect(track, fx)
	if e == nil || param < 0 || int(param) >= len(e.Params) {
		return nil
	}
	return e.Params[param]
}

func (s *Session) selected() []entities.Target {
	var sel []entities.Target
	for _, h := range s.order {
		if s.tracks[h].Selected {
			sel = append(sel, h)
		}
	}
	return sel
}

// Install registers every operation of the fake project on h.
// The function literal types match the host signatures exactly.
func (s *Session) Install(h *FakeHost) {
	s.InstallFX(h)
	s.InstallTracks(h)
	s.InstallExtState(h)
	s.InstallUndo(h)
	s.InstallUI(h)
}

// InstallFX registers the effect and parameter operations.
func (s *Session) InstallFX(h *FakeHost) {
	h.Register("TrackFX_GetCount", func(track uintptr) int32 {
		s.mu.Lock()
		defer s.mu.Unlock()
		tr := s.tracks[entities.Target(track)]
		if tr == nil {
			return 0
		}
		return int32(len(tr.Effects))
	})
	h.Register("TrackFX_GetFXName", func(track uintptr, fx int32, buf *byte, size int32) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		e := s.effect(track, fx)
		if e == nil {
			return false
		}
		return WriteCString(buf, size, e.Name)
	})
	h.Register("TrackFX_GetNumParams", func(track uintptr, fx int32) int32 {
		s.mu.Lock()
		defer s.mu.Unlock()
		e := s.effect(track, fx)
		if e == nil {
			return 0
		}
		return int32(len(e.Params))
	})
	h.Register("TrackFX_GetParamName", func(track uintptr, fx, param int32, buf *byte, size int32) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.param(track, fx, param)
		if p == nil {
			return false
		}
		return WriteCString(buf, size, p.Name)
	})
	h.Register("TrackFX_GetParam", func(track uintptr, fx, param int32, minOut, maxOut *float64) float64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.param(track, fx, param)
		if p == nil {
			return 0
		}
		if minOut != nil {
			*minOut = p.Min
		}
		if maxOut != nil {
			*maxOut = p.Max
		}
		return p.Value
	})
	h.Register("TrackFX_GetFormattedParamValue", func(track uintptr, fx, param int32, buf *byte, size int32) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.param(track, fx, param)
		if p == nil || p.Unformattable {
			return false
		}
		return WriteCString(buf, size, FormatValue(p.Value))
	})
	h.Register("TrackFX_SetParam", func(track uintptr, fx, param int32, val float64) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.param(track, fx, param)
		if p == nil || p.Locked {
			return false
		}
		p.Value = val
		return true
	})
	h.Register("TrackFX_FormatParamValue", func(track uintptr, fx, param int32, val float64, buf *byte, size int32) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.param(track, fx, param)
		if p == nil || p.Unformattable {
			return false
		}
		return WriteCString(buf, size, FormatValue(val))
	})
}

// InstallTracks registers the track query operations.
func (s *Session) InstallTracks(h *FakeHost) {
	h.Register("CountSelectedTracks", func(proj uintptr) int32 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return int32(len(s.selected()))
	})
	h.Register("GetSelectedTrack", func(proj uintptr, idx int32) uintptr {
		s.mu.Lock()
		defer s.mu.Unlock()
		sel := s.selected()
		if idx < 0 || int(idx) >= len(sel) {
			return 0
		}
		return uintptr(sel[idx])
	})
	h.Register("GetTrackName", func(track uintptr, buf *byte, size int32) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		tr := s.tracks[entities.Target(track)]
		if tr == nil {
			return false
		}
		return WriteCString(buf, size, tr.Name)
	})
	h.Register("GetMediaTrackInfo_Value", func(track uintptr, parm string) float64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		tr := s.tracks[entities.Target(track)]
		if tr == nil {
			return 0
		}
		switch parm {
		case "I_SELECTED":
			if tr.Selected {
				return 1
			}
			return 0
		case "D_VOL":
			return tr.Volume
		case "I_FXEN":
			return 1
		}
		return 0
	})
}

// InstallExtState registers the key/value operations.
func (s *Session) InstallExtState(h *FakeHost) {
	h.Register("GetExtState", func(section, key string) string {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.extState[section+"/"+key]
	})
	h.Register("SetExtState", func(section, key, value string, persist bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.extState[section+"/"+key] = value
		s.persist[section+"/"+key] = persist
	})
	h.Register("HasExtState", func(section, key string) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.extState[section+"/"+key]
		return ok
	})
	h.Register("DeleteExtState", func(section, key string, persist bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.extState, section+"/"+key)
		delete(s.persist, section+"/"+key)
	})
}

// InstallUndo registers the undo block operations. Each call appends to Undo.
func (s *Session) InstallUndo(h *FakeHost) {
	h.Register("Undo_BeginBlock2", func(proj uintptr) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Undo = append(s.Undo, "begin")
	})
	h.Register("Undo_EndBlock2", func(proj uintptr, desc string, flags int32) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Undo = append(s.Undo, "end:"+desc)
	})
}

// InstallUI registers the console and dialog operations. GetUserInputs
// answers every field with "ok".
func (s *Session) InstallUI(h *FakeHost) {
	h.Register("ShowConsoleMsg", func(msg string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Console = append(s.Console, msg)
	})
	h.Register("ShowMessageBox", func(msg, title string, typ int32) int32 {
		return 1
	})
	h.Register("GetUserInputs", func(title string, numInputs int32, captions string, values *byte, valuesSize int32) bool {
		answer := "ok"
		for i := int32(1); i < numInputs; i++ {
			answer += ",ok"
		}
		return WriteCString(values, valuesSize, answer)
	})
}

// ConsoleLines returns a copy of everything printed to the console.
func (s *Session) ConsoleLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Console...)
}

// UndoLog returns a copy of the undo history.
func (s *Session) UndoLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Undo...)
}
