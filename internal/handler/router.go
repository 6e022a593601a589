/*
Package handler provides the HTTP handlers and routing setup for the GameVault server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"gamevault/internal/pkg/auth/jwt"
	"gamevault/internal/pkg/limiter"
	"gamevault/internal/pkg/logx"
	"gamevault/internal/pkg/resp"
)

const (
	RegisterRate  = 0.05
	RegisterBurst = 2
	SessionRate   = 0.2
	SessionBurst  = 5
	WriteRate     = 1.0
	WriteBurst    = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and
// per-route middleware before delegating to the handler functions.
func Router(deps *AppDeps) http.Handler {
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)
	sessionLimiter := limiter.NewIPRateLimiter(rate.Limit(SessionRate), SessionBurst)
	writeLimiter := limiter.NewIPRateLimiter(rate.Limit(WriteRate), WriteBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logx.Info("Health check endpoint hit")

		data := map[string]string{
			"status":  "ok",
			"service": "GameVault Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			rateLimitedRegister := registerLimiter.Middleware(HandleRegister(deps))
			auth.Post("/register", http.HandlerFunc(rateLimitedRegister.ServeHTTP))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Get("/profile", HandleGetProfile(deps))

		api.Route("/games", func(games chi.Router) {
			games.Get("/", HandleListGames(deps))
			games.Get("/{id}", HandleGetGame(deps))

			rateLimitedFavorite := writeLimiter.Middleware(HandleToggleFavorite(deps))
			games.Post("/{id}/favorite", http.HandlerFunc(rateLimitedFavorite.ServeHTTP))

			rateLimitedRating := writeLimiter.Middleware(HandleSubmitRating(deps))
			games.Post("/{id}/rating", http.HandlerFunc(rateLimitedRating.ServeHTTP))
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, sessionLimiter, deps))

	return r
}
