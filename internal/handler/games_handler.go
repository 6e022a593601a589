/*
Package handler provides HTTP handler functions for browsing the game catalog.
*/
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gamevault/internal/app/catalog"
	"gamevault/internal/app/profile"
	"gamevault/internal/pkg/auth/jwt"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/resp"
)

// HandleListGames runs the query pipeline over the current catalog snapshot.
//
// Query parameters: search (title prefix), genre (exact match, empty = all),
// favorites (restrict to the caller's saved games), order=worst (ascending
// rating order). The favorites scope and rating order only apply to
// authenticated callers; for anonymous callers they pass through unchanged.
func HandleListGames(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, loaded := deps.Catalog.Snapshot()
		if !loaded {
			resp.RespondError(w, r, errs.NewError(errs.ErrCatalogNotReady))
			return
		}

		params := r.URL.Query()

		query := catalog.Query{
			Search:        params.Get("search"),
			Genre:         params.Get("genre"),
			FavoritesOnly: isTruthy(params.Get("favorites")),
			WorstFirst:    params.Get("order") == "worst",
		}

		var favorites map[int64]struct{}
		var ratings map[int64]int

		identity := jwt.GetPayloadFromContext(r)
		if identity != nil {
			doc, customErr := deps.Profiles.Snapshot(r.Context(), identity.ID)
			if customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
			favorites = profile.FavoriteSet(doc)
			ratings = doc.Ratings
		} else {
			// Anonymous callers browse the full catalog in original order.
			query.FavoritesOnly = false
		}

		view := catalog.BuildView(games, query, favorites, ratings)

		resp.RespondSuccess(w, r, map[string]any{
			"games":  view,
			"count":  len(view),
			"genres": deps.Catalog.Genres(),
		})
	}
}

// HandleGetGame returns one game together with its community aggregate and,
// for authenticated callers, their own rating and saved flag.
func HandleGetGame(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, customErr := gameIDParam(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		game, ok := deps.Catalog.Get(gameID)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrGameNotFound))
			return
		}

		agg, customErr := deps.Ratings.Aggregate(r.Context(), gameID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		myRating := 0
		saved := false

		if identity := jwt.GetPayloadFromContext(r); identity != nil {
			doc, customErr := deps.Profiles.Snapshot(r.Context(), identity.ID)
			if customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
			myRating = doc.Ratings[gameID]
			saved = doc.HasSaved(gameID)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"game":          game,
			"averageRating": agg.Average(),
			"ratingCount":   agg.RatingCount,
			"myRating":      myRating,
			"saved":         saved,
		})
	}
}

// gameIDParam parses the {id} route parameter.
func gameIDParam(r *http.Request) (int64, *errs.CustomError) {
	idStr := chi.URLParam(r, "id")

	gameID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || gameID < 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}

	return gameID, nil
}

// isTruthy interprets a boolean query parameter.
func isTruthy(value string) bool {
	return value == "1" || value == "true"
}
