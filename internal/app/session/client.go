/*
Package session contains the live session layer.

This file defines the Client struct, representing one active WebSocket
connection. It manages the connection lifecycle, the message pumps, and the
teardown of the profile and notice subscriptions owned by the session.
*/
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"gamevault/internal/app/docstore"
	"gamevault/internal/app/notify"
	"gamevault/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	// Sessions are push-only; inbound frames beyond control messages are discarded.
	maxMessageSize = 512

	// size of the outbound message queue per session.
	sendQueueSize = 64
)

// Event type identifiers pushed to the browser.
const (
	// TypeProfileUpdate carries the user's current saved games and ratings.
	TypeProfileUpdate = "PROFILE_UPDATE"

	// TypeNotice carries a user-facing notification.
	TypeNotice = "NOTICE"
)

// Event is the envelope of every message pushed over the session socket.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ProfilePayload mirrors the user's profile document for the browser.
type ProfilePayload struct {
	SavedGames []int64       `json:"savedGames"`
	Ratings    map[int64]int `json:"ratings"`
}

// Client represents one active WebSocket session for a signed-in user.
// A user may hold several sessions at once (one per browser tab), so each
// session carries its own id.
type Client struct {
	manager *Manager
	conn    *websocket.Conn
	id      string
	userID  string

	// send queues outbound frames for the write pump.
	send chan []byte

	// sendMu guards send against enqueue-after-close.
	sendMu sync.Mutex
	closed bool

	closeOnce sync.Once

	// teardown hooks for the subscriptions owned by this session.
	stopMirror  func()
	stopNotices func()

	logger zerolog.Logger
}

func newClient(manager *Manager, conn *websocket.Conn, userID string) *Client {
	sessionID := uuid.NewString()
	return &Client{
		manager: manager,
		conn:    conn,
		id:      sessionID,
		userID:  userID,
		send:    make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("component", "Session").
			Str("session_id", sessionID).
			Str("user_id", userID).
			Logger(),
	}
}

// sendProfile queues a PROFILE_UPDATE event with the given document state.
func (c *Client) sendProfile(doc docstore.UserDoc) {
	payload := ProfilePayload{
		SavedGames: doc.SavedGames,
		Ratings:    doc.Ratings,
	}
	if payload.SavedGames == nil {
		payload.SavedGames = []int64{}
	}
	if payload.Ratings == nil {
		payload.Ratings = map[int64]int{}
	}

	c.sendEvent(Event{Type: TypeProfileUpdate, Payload: payload})
}

// forwardNotices relays the notification hub's channel into the socket until
// the subscription is stopped.
func (c *Client) forwardNotices(ch <-chan notify.Notice) {
	for notice := range ch {
		c.sendEvent(Event{Type: TypeNotice, Payload: notice})
	}
}

// sendEvent marshals the event and queues it without blocking. A full queue
// drops the frame; the next profile update resynchronizes the client.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error().Err(err).Str("event_type", event.Type).Msg("Error marshaling session event")
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Session send queue full, dropping event")
	}
}

// readPump consumes the connection until it errors, handling heartbeats.
// Sessions are push-only, so inbound text frames are discarded.
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Session connection closed unexpectedly")
			}
			return
		}
	}
}

// writePump writes queued frames and periodic pings until the send queue is
// closed or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// close tears the session down exactly once: detach from the manager, stop
// the document and notice subscriptions, then close the send queue so the
// write pump exits and closes the connection.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.manager.detach(c)

		if c.stopMirror != nil {
			c.stopMirror()
		}
		if c.stopNotices != nil {
			c.stopNotices()
		}

		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
	})
}
