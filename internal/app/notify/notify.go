/*
Package notify is the application's notification channel.

The catalog app kept a single process-wide "current toast" slot that any
component could overwrite. Here that becomes an explicit hub: components
publish notices addressed to a user (or to everyone), and each subscriber
receives them on its own channel, coalesced to the most recent notice when the
consumer lags. The WebSocket session layer is the single renderer.
*/
package notify

import (
	"sync"

	"gamevault/internal/pkg/errs"
)

// Severity classifies a notice for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notice is one user-facing notification.
type Notice struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// FromError converts a business error into an error notice.
func FromError(customErr *errs.CustomError) Notice {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}
	return Notice{
		Severity: SeverityError,
		Title:    "Error",
		Message:  customErr.Message,
	}
}

// Success builds a success notice.
func Success(message string) Notice {
	return Notice{
		Severity: SeveritySuccess,
		Title:    "Success",
		Message:  message,
	}
}

type subscriber struct {
	ch chan Notice
}

// Hub fans notices out to subscribers keyed by user id.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

// NewHub returns an empty notification hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe registers a consumer for notices addressed to the given user id.
// The stop function is idempotent and closes the channel.
func (h *Hub) Subscribe(userID string) (<-chan Notice, func()) {
	s := &subscriber{ch: make(chan Notice, 1)}

	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[userID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[userID]; ok {
				delete(set, s)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			close(s.ch)
			h.mu.Unlock()
		})
	}

	return s.ch, stop
}

// Publish delivers a notice to every subscriber of the given user id,
// replacing a pending undelivered notice when the consumer lags.
func (h *Hub) Publish(userID string, n Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deliver(h.subs[userID], n)
}

// Broadcast delivers a notice to every subscriber of every user.
func (h *Hub) Broadcast(n Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.subs {
		h.deliver(set, n)
	}
}

func (h *Hub) deliver(set map[*subscriber]struct{}, n Notice) {
	for s := range set {
		select {
		case s.ch <- n:
		default:
			select {
			case <-s.ch:
			default:
			}
			s.ch <- n
		}
	}
}
