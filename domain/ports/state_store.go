package ports

// StateStore provides namespaced key/value persistence backed by the host.
type StateStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool)

	// Set stores value under key. When persist is true the host keeps the
	// value across sessions.
	Set(key, value string, persist bool) error

	// Has reports whether key exists.
	Has(key string) bool

	// Delete removes key. When persist is true the persisted copy is removed too.
	Delete(key string, persist bool) error

	// Section returns the namespace keys are stored under.
	Section() string
}
