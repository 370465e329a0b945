// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services hold all session state behind their own locks, so the
// CLI, the TUI and the MCP server can share one instance.
package services
