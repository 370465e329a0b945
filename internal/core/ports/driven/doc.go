// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TaggingService: Sends a document to the remote tagging service
//   - RenderService: Renders a reviewed snapshot into a tagged PDF
//   - ArtifactStore: Holds generated documents behind releasable handles
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PDFInspector: Local PDF validation. Without it uploads are not
//     pre-checked and artifacts carry no page count.
//   - FileWatcher: Source file change notifications for watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or driving package
package driven
