package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/internal/pkg/errs"
)

func receive(t *testing.T, ch <-chan Notice) Notice {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("no notice delivered")
		return Notice{}
	}
}

func TestPublish_ReachesAddressedUserOnly(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch1, stop1 := hub.Subscribe("u1")
	defer stop1()
	ch2, stop2 := hub.Subscribe("u2")
	defer stop2()

	hub.Publish("u1", Success("signed in"))

	n := receive(t, ch1)
	assert.Equal(t, SeveritySuccess, n.Severity)
	assert.Equal(t, "signed in", n.Message)

	select {
	case <-ch2:
		t.Fatal("notice leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublish_CoalescesWhenConsumerLags(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, stop := hub.Subscribe("u1")
	defer stop()

	hub.Publish("u1", Success("first"))
	hub.Publish("u1", Success("second"))
	hub.Publish("u1", Success("third"))

	n := receive(t, ch)
	assert.Equal(t, "third", n.Message)
}

func TestBroadcast_ReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch1, stop1 := hub.Subscribe("u1")
	defer stop1()
	ch2, stop2 := hub.Subscribe("u2")
	defer stop2()

	hub.Broadcast(Notice{Severity: SeverityError, Title: "Error", Message: "down"})

	assert.Equal(t, "down", receive(t, ch1).Message)
	assert.Equal(t, "down", receive(t, ch2).Message)
}

func TestSubscribe_StopIsIdempotentAndClosesChannel(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, stop := hub.Subscribe("u1")
	stop()
	stop()

	_, open := <-ch
	assert.False(t, open)

	// publishing after the last subscriber left does not panic
	hub.Publish("u1", Success("late"))
}

func TestFromError(t *testing.T) {
	t.Parallel()

	customErr := errs.NewError(errs.ErrCatalogTimeout)
	n := FromError(customErr)

	assert.Equal(t, SeverityError, n.Severity)
	assert.Equal(t, customErr.Message, n.Message)

	// nil falls back to the unknown error message
	fallback := FromError(nil)
	require.NotEmpty(t, fallback.Message)
	assert.Equal(t, SeverityError, fallback.Severity)
}
