package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and local development. All
// operations serialize on one mutex, which trivially satisfies the Tx
// contract.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]json.RawMessage
	broker *broker
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]json.RawMessage),
		broker: newBroker(),
	}
}

// Get performs a point read of one document.
func (s *Memory) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[docKey(collection, id)]
	if !ok {
		return Snapshot{}, nil
	}
	return Snapshot{Exists: true, Data: data}, nil
}

// Set performs a full-document upsert and notifies watchers.
func (s *Memory) Set(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	s.docs[docKey(collection, id)] = data
	s.mu.Unlock()

	s.broker.publish(collection, id, Snapshot{Exists: true, Data: data})
	return nil
}

// Tx runs fn under the store mutex and writes the replacement document.
func (s *Memory) Tx(ctx context.Context, collection, id string, fn func(Snapshot) (any, error)) error {
	s.mu.Lock()

	snap := Snapshot{}
	if data, ok := s.docs[docKey(collection, id)]; ok {
		snap = Snapshot{Exists: true, Data: data}
	}

	doc, err := fn(snap)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	s.docs[docKey(collection, id)] = data
	s.mu.Unlock()

	s.broker.publish(collection, id, Snapshot{Exists: true, Data: data})
	return nil
}

// Watch subscribes to a document via the in-process broker.
func (s *Memory) Watch(collection, id string) (<-chan Snapshot, func()) {
	return s.broker.watch(collection, id)
}
