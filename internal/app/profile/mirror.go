package profile

import (
	"context"
	"sync"

	"gamevault/internal/app/docstore"
	"gamevault/internal/pkg/logx"
)

// Mirror is a live local copy of one user's profile document. Each committed
// write to the document replaces the mirrored state atomically; reads never
// block the network path. onChange, when set, fires after every replacement.
type Mirror struct {
	mu  sync.RWMutex
	doc docstore.UserDoc

	stopWatch func()
	done      chan struct{}
}

// WatchUser primes a mirror with the document's current state and follows it
// until Stop is called. The subscription belongs to the session that created
// it and must be stopped when the session ends or the identity changes.
func WatchUser(ctx context.Context, store docstore.Store, userID string, onChange func(docstore.UserDoc)) (*Mirror, error) {
	ch, stop := store.Watch(docstore.CollectionUsers, userID)

	snap, err := store.Get(ctx, docstore.CollectionUsers, userID)
	if err != nil {
		stop()
		return nil, err
	}

	m := &Mirror{
		stopWatch: stop,
		done:      make(chan struct{}),
	}

	var doc docstore.UserDoc
	if err := snap.Decode(&doc); err != nil {
		stop()
		return nil, err
	}
	m.doc = doc

	go m.run(ch, userID, onChange)

	return m, nil
}

func (m *Mirror) run(ch <-chan docstore.Snapshot, userID string, onChange func(docstore.UserDoc)) {
	defer close(m.done)

	for snap := range ch {
		var doc docstore.UserDoc
		if err := snap.Decode(&doc); err != nil {
			logx.Error(err, "Ignoring corrupt profile update", "user_id", userID)
			continue
		}

		m.mu.Lock()
		m.doc = doc
		m.mu.Unlock()

		if onChange != nil {
			onChange(doc)
		}
	}
}

// Snapshot returns the mirrored document state.
func (m *Mirror) Snapshot() docstore.UserDoc {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc
}

// Stop tears the subscription down and waits for the mirror goroutine to exit,
// so no onChange callback fires after Stop returns.
func (m *Mirror) Stop() {
	m.stopWatch()
	<-m.done
}
