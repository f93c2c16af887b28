package driven

import "context"

// ChangeWatcher reports writes to persisted data made outside this process.
type ChangeWatcher interface {
	// Watch starts watching and returns a channel that receives a value
	// after each burst of changes. The channel is closed when ctx is done
	// or the watcher fails.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
