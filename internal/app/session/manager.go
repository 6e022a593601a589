/*
Package session contains the live session layer: one WebSocket connection per
signed-in browser tab, fed by the user's profile mirror and the notification
hub.

This file defines the Manager struct, which tracks all active sessions,
wires a new connection to its document subscription, and tears everything
down on shutdown.
*/
package session

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"gamevault/internal/app/docstore"
	"gamevault/internal/app/notify"
	"gamevault/internal/app/profile"
	"gamevault/internal/pkg/logx"
)

// Manager coordinates all active live sessions.
type Manager struct {
	store    docstore.Store
	notifier *notify.Hub

	// mu protects concurrent access to the clients set.
	mu      sync.RWMutex
	clients map[*Client]struct{}

	logger zerolog.Logger
}

// NewManager constructs and returns a new Manager instance.
func NewManager(store docstore.Store, notifier *notify.Hub) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		clients:  make(map[*Client]struct{}),
		logger:   logx.Logger().With().Str("component", "SessionManager").Logger(),
	}
}

// Attach turns an upgraded WebSocket connection into a live session for the
// given identity: it primes the profile mirror, subscribes to notices, sends
// the initial profile snapshot, and starts the connection pumps. The
// subscriptions live exactly as long as the connection.
func (m *Manager) Attach(ctx context.Context, conn *websocket.Conn, userID string) error {
	client := newClient(m, conn, userID)

	mirror, err := profile.WatchUser(ctx, m.store, userID, func(doc docstore.UserDoc) {
		client.sendProfile(doc)
	})
	if err != nil {
		m.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to prime profile mirror for session.")
		conn.Close()
		return err
	}
	client.stopMirror = mirror.Stop

	noticeCh, stopNotices := m.notifier.Subscribe(userID)
	client.stopNotices = stopNotices

	m.mu.Lock()
	m.clients[client] = struct{}{}
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info().
		Str("user_id", userID).
		Int("total_sessions", total).
		Msg("Session attached.")

	client.sendProfile(mirror.Snapshot())

	go client.forwardNotices(noticeCh)
	go client.writePump()
	go client.readPump()

	return nil
}

// detach removes the client from the managed set.
func (m *Manager) detach(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		m.logger.Info().
			Str("user_id", client.userID).
			Int("total_sessions", len(m.clients)).
			Msg("Session detached.")
	}
}

// Shutdown gracefully closes every active session.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down session manager...")

	m.mu.Lock()
	clients := make([]*Client, 0, len(m.clients))
	for client := range m.clients {
		clients = append(clients, client)
	}
	m.mu.Unlock()

	for _, client := range clients {
		client.close()
	}

	m.logger.Info().Msg("Session manager shutdown complete.")
}
