package dashboard

import (
	"metrics-dashboard/pkg/api"
	"sync"
)

type Snapshot struct {
	Models []api.ModelRecord
}

// Feed turns published collections into a channel. When the reader falls
// behind the oldest unread snapshot is dropped, publishing never blocks.
type Feed struct {
	mu        sync.Mutex
	snapshots chan Snapshot
	closed    bool
}

func NewFeed(buffer int) *Feed {
	return &Feed{snapshots: make(chan Snapshot, max(buffer, 1))}
}

func (f *Feed) OnCollectionPublished(collection []api.ModelRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	snapshot := Snapshot{Models: collection}
	for {
		select {
		case f.snapshots <- snapshot:
			return
		default:
		}
		select {
		case <-f.snapshots:
		default:
		}
	}
}

func (f *Feed) Snapshots() <-chan Snapshot {
	return f.snapshots
}

func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		close(f.snapshots)
		f.closed = true
	}
}
