package catalog

import (
	"sort"
	"strings"
)

// Query carries the caller's live UI state into the pipeline.
type Query struct {
	// Search keeps games whose title starts with it, compared
	// case-insensitively. A prefix match, not a substring match: matching
	// stays predictable and cheap. Empty matches all.
	Search string

	// Genre keeps games whose genre equals it exactly (case-sensitive).
	// The empty string means all genres.
	Genre string

	// FavoritesOnly restricts the result to the caller's saved games.
	// It has no effect for anonymous callers (the handler clears it).
	FavoritesOnly bool

	// WorstFirst flips the rating order to ascending.
	WorstFirst bool
}

// BuildView runs the catalog through the query pipeline and returns the list
// to display. favorites is the caller's saved-game set (nil when anonymous),
// ratings the caller's own ratings by game id (nil when anonymous).
//
// Stage order is fixed: search filter, genre filter, favorites scope, rating
// order. The sort is stable and partitions rated games before unrated ones; a
// rated game outranks an unrated one regardless of its numeric value, and
// unrated games keep their original relative order.
func BuildView(games []Game, q Query, favorites map[int64]struct{}, ratings map[int64]int) []Game {
	result := make([]Game, 0, len(games))
	if games == nil {
		return result
	}

	searchTerm := strings.ToLower(q.Search)

	for _, game := range games {
		if searchTerm != "" && !strings.HasPrefix(strings.ToLower(game.Title), searchTerm) {
			continue
		}

		if q.Genre != "" && game.Genre != q.Genre {
			continue
		}

		if q.FavoritesOnly {
			if _, saved := favorites[game.ID]; !saved {
				continue
			}
		}

		result = append(result, game)
	}

	if len(ratings) > 0 {
		sort.SliceStable(result, func(i, j int) bool {
			ri, ratedI := ratings[result[i].ID]
			rj, ratedJ := ratings[result[j].ID]

			if ratedI != ratedJ {
				return ratedI
			}
			if !ratedI {
				return false
			}

			if q.WorstFirst {
				return ri < rj
			}
			return ri > rj
		})
	}

	return result
}

// Genres returns the distinct genre values of the catalog in first-appearance
// order. It is recomputed whenever the catalog snapshot changes.
func Genres(games []Game) []string {
	seen := make(map[string]struct{}, len(games))
	genres := make([]string, 0, len(games))

	for _, game := range games {
		if _, ok := seen[game.Genre]; ok {
			continue
		}
		seen[game.Genre] = struct{}{}
		genres = append(genres, game.Genre)
	}

	return genres
}
