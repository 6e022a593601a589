/*
Package handler provides HTTP handler functions for account sign-up, sign-in,
and sign-out.
*/
package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"gamevault/internal/app/account"
	"gamevault/internal/app/db"
	"gamevault/internal/app/notify"
	"gamevault/internal/pkg/auth/jwt"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/logx"
	"gamevault/internal/pkg/req"
	"gamevault/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 6
	maxPasswordLen = 50
)

type CredentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateCredentials applies the shared e-mail and password shape rules.
func validateCredentials(input *CredentialsInput) *errs.CustomError {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if !emailRegex.MatchString(input.Email) {
		return errs.NewError(errs.ErrInvalidEmail)
	}

	passwordLen := utf8.RuneCountInString(input.Password)
	if passwordLen < minPasswordLen || passwordLen > maxPasswordLen {
		return errs.NewError(errs.ErrWeakPassword)
	}

	return nil
}

// HandleRegister processes the request to create a new account with e-mail and password.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input CredentialsInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := validateCredentials(&input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		acct, err := deps.Accounts.Create(r.Context(), input.Email, string(hashedPassword))
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("registration conflict: e-mail already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailInUse))
				return
			}

			logx.Error(err, "failed to create account in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthUnavailable))
			return
		}

		if err := deps.Accounts.TouchLastLogin(r.Context(), acct.ID); err != nil {
			logx.Error(err, "register: failed to update last_login_at", "account_id", acct.ID)
		}

		payload := &jwt.Payload{
			ID:    acct.ID,
			Email: acct.Email,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "failed to generate token after registration")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user": map[string]any{
				"id":    acct.ID,
				"email": acct.Email,
			},
			"notice": notify.Success("Your account was created and you are signed in."),
		})
	}
}

// HandleLogin verifies account credentials and issues a JWT token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity := jwt.GetPayloadFromContext(r); identity != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input CredentialsInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Email = strings.TrimSpace(strings.ToLower(input.Email))
		if input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		acct, err := deps.Accounts.GetByEmail(r.Context(), input.Email)
		if err != nil {
			if account.IsNotFound(err) {
				logx.Warn("login: unknown e-mail", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
				return
			}

			logx.Error(err, "login: account fetch failed", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthUnavailable))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := deps.Accounts.TouchLastLogin(r.Context(), acct.ID); err != nil {
			logx.Error(err, "login: failed to update last_login_at", "account_id", acct.ID)
		}

		payload := &jwt.Payload{
			ID:    acct.ID,
			Email: acct.Email,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user": map[string]any{
				"id":    acct.ID,
				"email": acct.Email,
			},
			"notice": notify.Success("You have been signed in successfully."),
		})
	}
}

// HandleLogout acknowledges a sign-out. Tokens are stateless, so the client
// discards its copy; the response carries the farewell notice.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"notice": notify.Success("You have been signed out successfully."),
		})
	}
}

// HandleGetProfile returns the signed-in account together with its saved
// games and ratings.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		acct, err := deps.Accounts.GetByID(r.Context(), identity.ID)
		if err != nil {
			logx.Warn("get_profile: account not found", "account_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		doc, customErr := deps.Profiles.Snapshot(r.Context(), identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var lastLogin any
		if acct.LastLoginAt != nil {
			lastLogin = acct.LastLoginAt.Format(time.RFC3339)
		}

		savedGames := doc.SavedGames
		if savedGames == nil {
			savedGames = []int64{}
		}
		ratings := doc.Ratings
		if ratings == nil {
			ratings = map[int64]int{}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": map[string]any{
				"id":          acct.ID,
				"email":       acct.Email,
				"lastLoginAt": lastLogin,
			},
			"savedGames": savedGames,
			"ratings":    ratings,
		})
	}
}
