// Package file provides the TOML-backed configuration store.
//
// Keys are addressed in dot notation ("service.url") and written to disk
// as nested tables:
//
//	[service]
//	url = "http://localhost:8000/"
package file
