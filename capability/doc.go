// Package capability resolves named host operations into entry points.
//
// The host hands the extension a single bootstrap lookup when it loads it.
// Bootstrap stores that lookup exactly once, Resolver asks it for entry
// points by name, and Table memoizes the answers so every name is looked up
// at most once for the life of the process.
package capability
