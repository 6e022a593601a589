/*
Package rating records per-user star ratings and maintains the per-game
community aggregate.

A user has at most one rating per game; re-rating replaces the previous value.
The aggregate tracks the distinct contributor set and a delta-corrected sum,
so re-rating never inflates the count or double-counts the sum.
*/
package rating

import (
	"context"

	"github.com/rs/zerolog"

	"gamevault/internal/app/docstore"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/logx"
)

// Accepted star range. The catalog UI renders five star slots.
const (
	MinStars = 1
	MaxStars = 5
)

// Service wraps rating operations against the document store.
type Service struct {
	store  docstore.Store
	logger zerolog.Logger
}

// NewService returns a rating service backed by the given store.
func NewService(store docstore.Store) *Service {
	return &Service{
		store:  store,
		logger: logx.Logger().With().Str("component", "rating").Logger(),
	}
}

// Submit records the user's rating for a game and folds the change into the
// community aggregate.
//
// Two writes happen in order: the per-user ratings map is upserted first
// (capturing delta = value - previous), then the aggregate document absorbs
// the delta inside the store's transaction primitive. The two writes are not
// mutually atomic: a crash in between leaves the aggregate stale, which is
// acceptable for a best-effort display statistic.
func (s *Service) Submit(ctx context.Context, userID string, gameID int64, value int) *errs.CustomError {
	if value < MinStars || value > MaxStars {
		return errs.NewError(errs.ErrRatingOutOfRange)
	}

	var delta int

	err := s.store.Tx(ctx, docstore.CollectionUsers, userID, func(snap docstore.Snapshot) (any, error) {
		var doc docstore.UserDoc
		if err := snap.Decode(&doc); err != nil {
			return nil, err
		}

		previous := doc.Ratings[gameID]
		delta = value - previous

		if doc.Ratings == nil {
			doc.Ratings = make(map[int64]int)
		}
		doc.Ratings[gameID] = value

		return doc, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("game_id", gameID).Msg("Failed to record user rating.")
		return errs.NewError(errs.ErrStoreFailed)
	}

	err = s.store.Tx(ctx, docstore.CollectionGameRatings, docstore.GameDocID(gameID), func(snap docstore.Snapshot) (any, error) {
		if !snap.Exists {
			return docstore.AggregateDoc{
				UserIDs:     []string{userID},
				RatingCount: 1,
				RatingSum:   float64(value),
			}, nil
		}

		var agg docstore.AggregateDoc
		if err := snap.Decode(&agg); err != nil {
			return nil, err
		}

		if !agg.HasContributor(userID) {
			agg.UserIDs = append(agg.UserIDs, userID)
		}
		agg.RatingSum += float64(delta)
		agg.RatingCount = len(agg.UserIDs)

		return agg, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("game_id", gameID).Msg("Failed to update rating aggregate.")
		return errs.NewError(errs.ErrStoreFailed)
	}

	return nil
}

// Aggregate point-reads the community aggregate for a game. A game nobody has
// rated yet gets the zero aggregate.
func (s *Service) Aggregate(ctx context.Context, gameID int64) (docstore.AggregateDoc, *errs.CustomError) {
	snap, err := s.store.Get(ctx, docstore.CollectionGameRatings, docstore.GameDocID(gameID))
	if err != nil {
		s.logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to read rating aggregate.")
		return docstore.AggregateDoc{}, errs.NewError(errs.ErrStoreFailed)
	}

	var agg docstore.AggregateDoc
	if err := snap.Decode(&agg); err != nil {
		s.logger.Error().Err(err).Int64("game_id", gameID).Msg("Rating aggregate document is corrupt.")
		return docstore.AggregateDoc{}, errs.NewError(errs.ErrStoreFailed)
	}

	return agg, nil
}
