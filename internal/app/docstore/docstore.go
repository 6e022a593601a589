/*
Package docstore provides the document store capability the favorites and
ratings features persist through.

A document is a small JSON object addressed by (collection, id). The Store
interface exposes point reads, full-document upserts, a transactional
read-modify-write primitive, and live watches that push a fresh snapshot to
subscribers after every committed write. Two implementations exist: a
PostgreSQL-backed store for production and an in-memory store for tests and
local development.
*/
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names of the documents used by the application.
const (
	// CollectionUsers holds one profile document per account, keyed by the
	// account UUID: saved game ids plus the user's own ratings map. Fields
	// appear only after first use.
	CollectionUsers = "users"

	// CollectionGameRatings holds one community aggregate document per game,
	// keyed by the decimal game id.
	CollectionGameRatings = "gameRatings"
)

// Snapshot is the state of one document at a point in time.
// Exists is false when the document has never been written.
type Snapshot struct {
	Exists bool
	Data   json.RawMessage
}

// Decode unmarshals the snapshot into dst. Decoding a non-existent snapshot
// leaves dst untouched.
func (s Snapshot) Decode(dst any) error {
	if !s.Exists {
		return nil
	}
	if err := json.Unmarshal(s.Data, dst); err != nil {
		return fmt.Errorf("failed to decode document snapshot: %w", err)
	}
	return nil
}

// Store is the contract both the PostgreSQL and the in-memory implementations satisfy.
type Store interface {
	// Get performs a point read of one document.
	Get(ctx context.Context, collection, id string) (Snapshot, error)

	// Set performs a full-document upsert and notifies watchers.
	Set(ctx context.Context, collection, id string, doc any) error

	// Tx runs fn inside the store's transaction primitive: fn receives the
	// current snapshot with the document row locked for the duration of the
	// call and returns the full replacement document. Watchers are notified
	// after commit.
	Tx(ctx context.Context, collection, id string, fn func(Snapshot) (any, error)) error

	// Watch subscribes to a document. The returned channel delivers a snapshot
	// after every committed write, coalescing to the latest state when the
	// subscriber lags. The stop function releases the subscription and closes
	// the channel.
	Watch(collection, id string) (<-chan Snapshot, func())
}

// UserDoc is the per-account profile document. Both fields are optional until
// first use: the document is created by whichever of the favorite or rating
// actions happens first.
type UserDoc struct {
	SavedGames []int64       `json:"savedGames,omitempty"`
	Ratings    map[int64]int `json:"ratings,omitempty"`
}

// HasSaved reports whether the given game id is in the saved set.
func (d *UserDoc) HasSaved(gameID int64) bool {
	for _, id := range d.SavedGames {
		if id == gameID {
			return true
		}
	}
	return false
}

// AggregateDoc is the per-game community rating document. ratingCount always
// equals the number of distinct contributors in userIds; ratingSum is adjusted
// by rating deltas so re-rating never double counts.
type AggregateDoc struct {
	UserIDs     []string `json:"userIds"`
	RatingCount int      `json:"ratingCount"`
	RatingSum   float64  `json:"ratingSum"`
}

// HasContributor reports whether the given user already rated this game.
func (d *AggregateDoc) HasContributor(userID string) bool {
	for _, id := range d.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Average returns the community average, or 0 when nobody has rated yet.
func (d *AggregateDoc) Average() float64 {
	if d.RatingCount > 0 {
		return d.RatingSum / float64(d.RatingCount)
	}
	return 0
}

// GameDocID renders a game id as a document identifier.
func GameDocID(gameID int64) string {
	return fmt.Sprintf("%d", gameID)
}
