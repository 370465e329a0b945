package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch emits the file path each time the file is written or replaced.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan string, error)
}
