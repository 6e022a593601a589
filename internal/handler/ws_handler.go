/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
authenticating the caller, upgrading the HTTP connection to WebSocket, and attaching the
connection to the session manager for profile and notice push events.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"gamevault/internal/pkg/auth/jwt"
	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/limiter"
	"gamevault/internal/pkg/logx"
	"gamevault/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket session requests.
// Browsers cannot set headers on WebSocket requests, so the token travels in the
// "token" query parameter instead of the Authorization header.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			logx.Warn("WebSocket request rejected: Missing token query parameter")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket request rejected: Invalid token", "error", err.Error())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		logx.Info("Attempting to upgrade connection", "user_id", payload.ID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		if err := deps.Sessions.Attach(r.Context(), conn, payload.ID); err != nil {
			logx.Error(err, "Failed to attach WebSocket session", "user_id", payload.ID)
			conn.Close()
			return
		}

		logx.Info("WebSocket session established", "user_id", payload.ID)
	}
}
