// Package host wires the extension together when the host application
// loads it.
//
// Load takes the plugin info record the host passes to the entry point,
// stores its bootstrap lookup, and builds the logger, capability table,
// typed wrappers, batch engine and state store from the configuration
// file. Close releases what Load opened.
package host
