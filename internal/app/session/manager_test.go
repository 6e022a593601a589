package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/internal/app/docstore"
	"gamevault/internal/app/notify"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialSession upgrades a test connection and attaches it for the given user.
func dialSession(t *testing.T, manager *Manager, userID string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		require.NoError(t, manager.Attach(r.Context(), conn, userID))
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func decodeProfile(t *testing.T, event Event) ProfilePayload {
	t.Helper()

	require.Equal(t, TypeProfileUpdate, event.Type)

	data, err := json.Marshal(event.Payload)
	require.NoError(t, err)

	var payload ProfilePayload
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestAttach_SendsInitialProfileSnapshot(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), docstore.CollectionUsers, "u1",
		docstore.UserDoc{SavedGames: []int64{7}, Ratings: map[int64]int{7: 5}}))

	manager := NewManager(store, notify.NewHub())
	defer manager.Shutdown()

	conn := dialSession(t, manager, "u1")

	payload := decodeProfile(t, readEvent(t, conn))
	assert.Equal(t, []int64{7}, payload.SavedGames)
	assert.Equal(t, map[int64]int{7: 5}, payload.Ratings)
}

func TestAttach_EmptyProfileSendsEmptyCollections(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	manager := NewManager(store, notify.NewHub())
	defer manager.Shutdown()

	conn := dialSession(t, manager, "u1")

	payload := decodeProfile(t, readEvent(t, conn))
	require.NotNil(t, payload.SavedGames)
	require.NotNil(t, payload.Ratings)
	assert.Empty(t, payload.SavedGames)
	assert.Empty(t, payload.Ratings)
}

func TestSession_PushesCommittedProfileWrites(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	manager := NewManager(store, notify.NewHub())
	defer manager.Shutdown()

	conn := dialSession(t, manager, "u1")
	readEvent(t, conn) // initial snapshot

	require.NoError(t, store.Set(context.Background(), docstore.CollectionUsers, "u1",
		docstore.UserDoc{SavedGames: []int64{1, 2}}))

	payload := decodeProfile(t, readEvent(t, conn))
	assert.Equal(t, []int64{1, 2}, payload.SavedGames)
}

func TestSession_PushesNotices(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	notifier := notify.NewHub()
	manager := NewManager(store, notifier)
	defer manager.Shutdown()

	conn := dialSession(t, manager, "u1")
	readEvent(t, conn) // initial snapshot

	notifier.Publish("u1", notify.Success("saved"))

	event := readEvent(t, conn)
	require.Equal(t, TypeNotice, event.Type)

	data, err := json.Marshal(event.Payload)
	require.NoError(t, err)
	var notice notify.Notice
	require.NoError(t, json.Unmarshal(data, &notice))
	assert.Equal(t, notify.SeveritySuccess, notice.Severity)
	assert.Equal(t, "saved", notice.Message)
}

func TestShutdown_ClosesConnections(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	manager := NewManager(store, notify.NewHub())

	conn := dialSession(t, manager, "u1")
	readEvent(t, conn) // initial snapshot

	manager.Shutdown()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
