// Package extstore persists small values in the host's extension state,
// namespaced under one section.
package extstore

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// ErrNotDispatched is returned when the host could not be called, usually
// because the state operations are not resolved.
var ErrNotDispatched = stdErrors.New("extstore: host state operation unavailable")

// Host is the subset of host operations the store needs.
// hostfuncs.API implements it.
type Host interface {
	GetExtState(section, key string) string
	SetExtState(section, key, value string, persist bool) bool
	HasExtState(section, key string) bool
	DeleteExtState(section, key string, persist bool) bool
}

// storeConfig holds configuration for the Store.
type storeConfig struct {
	section string // Namespace all keys live under
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		section: "reaper-bridge",
	}
}

// Option configures a Store instance.
type Option func(*storeConfig)

// WithSection sets the namespace keys are stored under.
func WithSection(section string) Option {
	return func(c *storeConfig) {
		if section != "" {
			c.section = section
		}
	}
}

// Store provides namespaced key/value persistence backed by the host.
type Store struct {
	host   Host
	config storeConfig
}

// NewStore creates a new Store with the given options.
func NewStore(host Host, opts ...Option) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{host: host, config: cfg}
}

// Section returns the namespace keys are stored under.
func (s *Store) Section() string {
	return s.config.section
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("extstore: empty key")
	}
	if strings.ContainsAny(key, "=\n") {
		return fmt.Errorf("extstore: key %q contains '=' or a newline", key)
	}
	return nil
}

// Get returns the value stored under key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	if checkKey(key) != nil || !s.host.HasExtState(s.config.section, key) {
		return "", false
	}
	return s.host.GetExtState(s.config.section, key), true
}

// Has reports whether key exists.
func (s *Store) Has(key string) bool {
	return checkKey(key) == nil && s.host.HasExtState(s.config.section, key)
}

// Set stores value under key. When persist is true the host keeps the value
// across sessions. Values must fit on one line.
func (s *Store) Set(key, value string, persist bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if strings.Contains(value, "\n") {
		return fmt.Errorf("extstore: value for %q spans several lines", key)
	}
	if !s.host.SetExtState(s.config.section, key, value, persist) {
		return fmt.Errorf("set %s/%s: %w", s.config.section, key, ErrNotDispatched)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string, persist bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !s.host.DeleteExtState(s.config.section, key, persist) {
		return fmt.Errorf("delete %s/%s: %w", s.config.section, key, ErrNotDispatched)
	}
	return nil
}

// Save encodes v as single-line YAML and stores it under key.
func (s *Store) Save(key string, v any, persist bool) error {
	data, err := encodeFlow(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Set(key, data, persist)
}

// Load decodes the value under key into v. It returns false, nil when the
// key does not exist.
func (s *Store) Load(key string, v any) (bool, error) {
	raw, ok := s.Get(key)
	if !ok {
		return false, nil
	}
	if err := yaml.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// encodeFlow renders v in YAML flow style so it fits on one line.
func encodeFlow(v any) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}
	flatten(&node)
	data, err := yaml.Marshal(&node)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func flatten(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style = yaml.FlowStyle
	case yaml.ScalarNode:
		if strings.ContainsAny(n.Value, "\n\r") {
			n.Style = yaml.DoubleQuotedStyle
		}
	}
	n.HeadComment, n.LineComment, n.FootComment = "", "", ""
	for _, c := range n.Content {
		flatten(c)
	}
}

var _ ports.StateStore = (*Store)(nil)
