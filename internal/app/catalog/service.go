package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"gamevault/internal/app/notify"
	"gamevault/internal/app/storage"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/logx"
)

const (
	// refreshRetryDelay is the pause before a failed refresh is attempted
	// again, matching the delayed-reload recovery of the catalog UI.
	refreshRetryDelay = 3 * time.Second

	// refreshRetryAttempts bounds the retries of one refresh cycle; the
	// periodic refresh ticker picks up again afterwards.
	refreshRetryAttempts = 3
)

// Service holds the current catalog snapshot. The catalog is fetched as a
// whole, treated as read-only between refreshes, and swapped atomically.
type Service struct {
	client       *Client
	notifier     *notify.Hub
	thumbnails   storage.ThumbnailStore
	refreshEvery time.Duration

	mu     sync.RWMutex
	games  []Game
	genres []string
	loaded bool

	logger zerolog.Logger
}

// NewService builds the catalog service. thumbnails may be nil, which
// disables the mirror and serves upstream thumbnail URLs untouched.
func NewService(client *Client, notifier *notify.Hub, thumbnails storage.ThumbnailStore, refreshEvery time.Duration) *Service {
	return &Service{
		client:       client,
		notifier:     notifier,
		thumbnails:   thumbnails,
		refreshEvery: refreshEvery,
		logger:       logx.Logger().With().Str("component", "catalog").Logger(),
	}
}

// Run loads the catalog and keeps it fresh until ctx is cancelled. Each cycle
// retries with a fixed delay before giving up until the next tick; a failed
// cycle leaves the previous snapshot (or the empty loading state) in place.
func (s *Service) Run(ctx context.Context) {
	s.refreshWithRetry(ctx)

	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Catalog refresh loop stopped.")
			return
		case <-ticker.C:
			s.refreshWithRetry(ctx)
		}
	}
}

func (s *Service) refreshWithRetry(ctx context.Context) {
	backoff := retry.WithMaxRetries(refreshRetryAttempts, retry.NewConstant(refreshRetryDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if customErr := s.Refresh(ctx); customErr != nil {
			return retry.RetryableError(customErr)
		}
		return nil
	})

	if err != nil {
		s.logger.Error().Err(err).Msg("Catalog refresh gave up until next cycle.")
	}
}

// Refresh fetches the catalog once, mirrors thumbnails when the mirror is
// enabled, and swaps the snapshot. On failure it publishes the classified
// notice to all connected sessions and returns the error.
func (s *Service) Refresh(ctx context.Context) *errs.CustomError {
	games, customErr := s.client.Fetch(ctx)
	if customErr != nil {
		s.notifier.Broadcast(notify.FromError(customErr))
		return customErr
	}

	if s.thumbnails != nil {
		s.mirrorThumbnails(ctx, games)
	}

	genres := Genres(games)

	s.mu.Lock()
	s.games = games
	s.genres = genres
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info().
		Int("games", len(games)).
		Int("genres", len(genres)).
		Msg("Catalog snapshot refreshed.")

	return nil
}

// mirrorThumbnails rewrites each game's thumbnail to its mirrored copy.
// A game whose mirror fails keeps the upstream URL.
func (s *Service) mirrorThumbnails(ctx context.Context, games []Game) {
	for i := range games {
		mirrored, err := s.thumbnails.MirrorThumbnail(ctx, games[i].ID, games[i].Thumbnail)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("game_id", games[i].ID).
				Msg("Thumbnail mirror failed, keeping upstream URL.")
			continue
		}
		games[i].Thumbnail = mirrored
	}
}

// Snapshot returns the current catalog and whether it has been loaded at all.
// The returned slice is shared and must be treated as read-only.
func (s *Service) Snapshot() ([]Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games, s.loaded
}

// Genres returns the distinct genres of the current snapshot in
// first-appearance order.
func (s *Service) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genres
}

// Get looks a game up by id in the current snapshot.
func (s *Service) Get(gameID int64) (Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, game := range s.games {
		if game.ID == gameID {
			return game, true
		}
	}
	return Game{}, false
}
