// Package hostfuncs provides typed invocation wrappers for the host's native
// plugin API.
//
// Every host operation is published as an untyped entry point looked up by
// name. This package owns the closed set of call signatures for those
// operations (the Catalog), the single place where an entry point is cast to
// its Go function type (Bind), and one wrapper per operation on Caller that
// validates arguments, invokes the bound function and normalizes failure into
// a documented default value.
//
// Wrappers never return errors and never touch native code when a handle,
// buffer or required argument is invalid. API layers name resolution on top
// of Caller for code that does not manage entry points itself.
package hostfuncs
