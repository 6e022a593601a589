/*
Package profile synchronizes the per-user profile document: the saved-games
set and the user's own ratings map.

The Service performs the storage operations; the Mirror keeps a live local
copy of one user's document for the session layer, replaced atomically on
every committed write (last write wins, no client-side merge).
*/
package profile

import (
	"context"

	"github.com/rs/zerolog"

	"gamevault/internal/app/docstore"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/logx"
)

// Service wraps favorites operations against the document store.
type Service struct {
	store  docstore.Store
	logger zerolog.Logger
}

// NewService returns a profile service backed by the given store.
func NewService(store docstore.Store) *Service {
	return &Service{
		store:  store,
		logger: logx.Logger().With().Str("component", "profile").Logger(),
	}
}

// Snapshot point-reads the user's profile document. A user who never saved or
// rated anything gets the zero document.
func (s *Service) Snapshot(ctx context.Context, userID string) (docstore.UserDoc, *errs.CustomError) {
	snap, err := s.store.Get(ctx, docstore.CollectionUsers, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to read profile document.")
		return docstore.UserDoc{}, errs.NewError(errs.ErrStoreFailed)
	}

	var doc docstore.UserDoc
	if err := snap.Decode(&doc); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Profile document is corrupt.")
		return docstore.UserDoc{}, errs.NewError(errs.ErrStoreFailed)
	}

	return doc, nil
}

// Toggle flips the saved state of gameID for the user: the document is created
// with just that game when absent, otherwise the id is removed when present or
// appended when not. The whole read-modify-write runs inside the store's
// transaction primitive, so concurrent toggles from two sessions serialize
// instead of silently dropping one. Returns whether the game is saved after
// the toggle.
func (s *Service) Toggle(ctx context.Context, userID string, gameID int64) (bool, *errs.CustomError) {
	var nowSaved bool

	err := s.store.Tx(ctx, docstore.CollectionUsers, userID, func(snap docstore.Snapshot) (any, error) {
		var doc docstore.UserDoc
		if err := snap.Decode(&doc); err != nil {
			return nil, err
		}

		if !snap.Exists {
			nowSaved = true
			return docstore.UserDoc{SavedGames: []int64{gameID}}, nil
		}

		if doc.HasSaved(gameID) {
			kept := make([]int64, 0, len(doc.SavedGames)-1)
			for _, id := range doc.SavedGames {
				if id != gameID {
					kept = append(kept, id)
				}
			}
			doc.SavedGames = kept
			nowSaved = false
		} else {
			doc.SavedGames = append(doc.SavedGames, gameID)
			nowSaved = true
		}

		return doc, nil
	})

	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("game_id", gameID).Msg("Favorite toggle failed.")
		return false, errs.NewError(errs.ErrStoreFailed)
	}

	return nowSaved, nil
}

// FavoriteSet converts a profile document's saved list into a lookup set for
// the query pipeline.
func FavoriteSet(doc docstore.UserDoc) map[int64]struct{} {
	set := make(map[int64]struct{}, len(doc.SavedGames))
	for _, id := range doc.SavedGames {
		set[id] = struct{}{}
	}
	return set
}
