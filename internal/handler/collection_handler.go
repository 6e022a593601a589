/*
Package handler provides HTTP handler functions for the signed-in user's
collection: favorite toggles and star ratings.
*/
package handler

import (
	"net/http"

	"gamevault/internal/app/notify"
	"gamevault/internal/pkg/auth/jwt"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/req"
	"gamevault/internal/pkg/resp"
)

// HandleToggleFavorite flips the saved state of one game for the signed-in
// user. Anonymous callers get a sign-in prompt and no state change.
func HandleToggleFavorite(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSignInToFavorite))
			return
		}

		gameID, customErr := gameIDParam(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, ok := deps.Catalog.Get(gameID); !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrGameNotFound))
			return
		}

		saved, customErr := deps.Profiles.Toggle(r.Context(), identity.ID, gameID)
		if customErr != nil {
			deps.Notifier.Publish(identity.ID, notify.FromError(customErr))
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"gameId": gameID,
			"saved":  saved,
		})
	}
}

type SubmitRatingInput struct {
	Value int `json:"value"`
}

// HandleSubmitRating records the signed-in user's star rating for one game
// and returns the refreshed community aggregate. Anonymous callers get a
// sign-in prompt and no state change.
func HandleSubmitRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSignInToRate))
			return
		}

		gameID, customErr := gameIDParam(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, ok := deps.Catalog.Get(gameID); !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrGameNotFound))
			return
		}

		var input SubmitRatingInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Ratings.Submit(r.Context(), identity.ID, gameID, input.Value); customErr != nil {
			deps.Notifier.Publish(identity.ID, notify.FromError(customErr))
			resp.RespondError(w, r, customErr)
			return
		}

		agg, customErr := deps.Ratings.Aggregate(r.Context(), gameID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"gameId":        gameID,
			"myRating":      input.Value,
			"averageRating": agg.Average(),
			"ratingCount":   agg.RatingCount,
		})
	}
}
