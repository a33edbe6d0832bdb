// Package types defines the entity structs, configuration, and standard
// error values shared by the trak storage backends and the interactive
// session layer.
package types
