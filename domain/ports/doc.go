// Package ports defines interfaces for infrastructure operations.
// These ports enable dependency inversion - the resolver, the typed wrappers
// and the batch engines depend on abstractions, and infrastructure adapters
// (the native binder, the host state store) implement these interfaces.
package ports
