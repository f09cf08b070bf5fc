// Package entities provides the core domain types shared by the capability
// resolver, the typed invocation wrappers and the batch engines.
// None of these types own host memory: handles are opaque addresses that are
// only ever passed back to the host.
package entities
