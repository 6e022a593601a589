package docstore

import "sync"

// broker fans committed document snapshots out to watchers. Every watcher
// channel has capacity one; when a subscriber lags, the pending snapshot is
// replaced by the newer one, so a mirror always converges on the latest
// committed state without blocking writers.
type broker struct {
	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
}

type watcher struct {
	ch chan Snapshot
}

func newBroker() *broker {
	return &broker{
		watchers: make(map[string]map[*watcher]struct{}),
	}
}

func docKey(collection, id string) string {
	return collection + "/" + id
}

// watch registers a subscriber for the given document key. The stop function
// is idempotent and closes the snapshot channel.
func (b *broker) watch(collection, id string) (<-chan Snapshot, func()) {
	w := &watcher{ch: make(chan Snapshot, 1)}
	key := docKey(collection, id)

	b.mu.Lock()
	set, ok := b.watchers[key]
	if !ok {
		set = make(map[*watcher]struct{})
		b.watchers[key] = set
	}
	set[w] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			b.mu.Lock()
			if set, ok := b.watchers[key]; ok {
				delete(set, w)
				if len(set) == 0 {
					delete(b.watchers, key)
				}
			}
			close(w.ch)
			b.mu.Unlock()
		})
	}

	return w.ch, stop
}

// publish delivers a snapshot to every watcher of the document. Holding the
// lock for the whole fan-out preserves commit order across watchers.
func (b *broker) publish(collection, id string, snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for w := range b.watchers[docKey(collection, id)] {
		select {
		case w.ch <- snap:
		default:
			// Subscriber lags: drop the stale pending snapshot.
			select {
			case <-w.ch:
			default:
			}
			w.ch <- snap
		}
	}
}
