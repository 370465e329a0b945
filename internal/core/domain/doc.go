// Package domain defines the core business entities for tagger.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TagResponse: One immutable snapshot of a tagging session
//   - Region: A structural unit of the document with its assigned tag
//   - Metadata: Descriptive document metadata
//   - Artifact: A handle to a generated output document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
