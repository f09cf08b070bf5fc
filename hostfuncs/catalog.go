package hostfuncs

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/reglet-dev/reaper-bridge/domain/errors"
)

// Signature tags a host operation name with the exact Go function type its
// entry point must be bound to.
type Signature struct {
	Type reflect.Type
	Name string
}

// SignatureOf builds the Signature of name for function type F.
func SignatureOf[F any](name string) Signature {
	return Signature{Name: name, Type: reflect.TypeFor[F]()}
}

// Catalog is an immutable collection of host operation signatures.
// Once created via NewCatalog, signatures cannot be added or removed.
// This ensures thread safety and lock-free lookups during binding.
type Catalog struct {
	signatures map[string]Signature
	names      []string // sorted for consistent iteration
}

// catalogBuilder accumulates configuration during catalog construction.
type catalogBuilder struct {
	signatures map[string]Signature
	errors     []error
}

// CatalogOption is a functional option for configuring a Catalog.
type CatalogOption func(*catalogBuilder)

// NewCatalog creates an immutable Catalog with the given options.
// Returns an error if any operation name is registered twice.
//
// Example usage:
//
//	catalog, err := NewCatalog(
//	    WithBundle(FXBundle()),
//	    WithSignature(SignatureOf[func(uintptr) int32]("CountTracks")),
//	)
func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	b := &catalogBuilder{
		signatures: make(map[string]Signature),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0] // Return first error
	}

	names := make([]string, 0, len(b.signatures))
	for name := range b.signatures {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{
		signatures: b.signatures,
		names:      names,
	}, nil
}

// DefaultCatalog returns a catalog with every operation this package wraps.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(WithBundle(AllBundles()))
	if err != nil {
		// The built-in bundles are disjoint; a duplicate is a programming error.
		panic(err)
	}
	return c
}

// Lookup returns the signature registered for name.
func (c *Catalog) Lookup(name string) (Signature, bool) {
	sig, ok := c.signatures[name]
	return sig, ok
}

// Has returns true if a signature with the given name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.signatures[name]
	return ok
}

// Names returns a sorted list of all registered operation names.
func (c *Catalog) Names() []string {
	result := make([]string, len(c.names))
	copy(result, c.names)
	return result
}

// Check verifies that t is the published type of name.
func (c *Catalog) Check(name string, t reflect.Type) error {
	sig, ok := c.signatures[name]
	if !ok {
		return &errors.SignatureError{Name: name}
	}
	if sig.Type != t {
		return &errors.SignatureError{Name: name, Want: sig.Type.String(), Got: t.String()}
	}
	return nil
}

// add registers a signature. Returns an error if the name is already
// registered or the type is not a function type.
func (b *catalogBuilder) add(sig Signature) error {
	if sig.Name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if sig.Type == nil || sig.Type.Kind() != reflect.Func {
		return fmt.Errorf("operation %q: signature must be a function type", sig.Name)
	}
	if _, exists := b.signatures[sig.Name]; exists {
		return fmt.Errorf("duplicate operation name: %q", sig.Name)
	}
	b.signatures[sig.Name] = sig
	return nil
}

// WithSignature registers a single signature.
func WithSignature(sig Signature) CatalogOption {
	return func(b *catalogBuilder) {
		if err := b.add(sig); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}
