package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGet_AbsentDocument(t *testing.T) {
	t.Parallel()

	store := NewMemory()

	snap, err := store.Get(context.Background(), CollectionUsers, "u1")
	require.NoError(t, err)
	assert.False(t, snap.Exists)

	// decoding an absent snapshot leaves the destination untouched
	doc := UserDoc{SavedGames: []int64{7}}
	require.NoError(t, snap.Decode(&doc))
	assert.Equal(t, []int64{7}, doc.SavedGames)
}

func TestMemorySetGet_Roundtrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	in := UserDoc{SavedGames: []int64{1, 2}, Ratings: map[int64]int{2: 5}}
	require.NoError(t, store.Set(ctx, CollectionUsers, "u1", in))

	snap, err := store.Get(ctx, CollectionUsers, "u1")
	require.NoError(t, err)
	require.True(t, snap.Exists)

	var out UserDoc
	require.NoError(t, snap.Decode(&out))
	assert.Equal(t, in, out)
}

func TestMemoryTx_CreatesAndUpdates(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	err := store.Tx(ctx, CollectionUsers, "u1", func(snap Snapshot) (any, error) {
		require.False(t, snap.Exists)
		return UserDoc{SavedGames: []int64{42}}, nil
	})
	require.NoError(t, err)

	err = store.Tx(ctx, CollectionUsers, "u1", func(snap Snapshot) (any, error) {
		require.True(t, snap.Exists)

		var doc UserDoc
		require.NoError(t, snap.Decode(&doc))
		doc.SavedGames = append(doc.SavedGames, 43)
		return doc, nil
	})
	require.NoError(t, err)

	snap, err := store.Get(ctx, CollectionUsers, "u1")
	require.NoError(t, err)

	var doc UserDoc
	require.NoError(t, snap.Decode(&doc))
	assert.Equal(t, []int64{42, 43}, doc.SavedGames)
}

func TestMemoryTx_ErrorAbortsWrite(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Tx(ctx, CollectionUsers, "u1", func(snap Snapshot) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	snap, err := store.Get(ctx, CollectionUsers, "u1")
	require.NoError(t, err)
	assert.False(t, snap.Exists)
}

func TestMemoryWatch_DeliversCommittedWrites(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	ch, stop := store.Watch(CollectionUsers, "u1")
	defer stop()

	require.NoError(t, store.Set(ctx, CollectionUsers, "u1", UserDoc{SavedGames: []int64{1}}))

	select {
	case snap := <-ch:
		var doc UserDoc
		require.NoError(t, snap.Decode(&doc))
		assert.Equal(t, []int64{1}, doc.SavedGames)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestMemoryWatch_CoalescesToLatest(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	ch, stop := store.Watch(CollectionUsers, "u1")
	defer stop()

	// a lagging subscriber sees only the newest committed state
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Set(ctx, CollectionUsers, "u1", UserDoc{SavedGames: []int64{i}}))
	}

	select {
	case snap := <-ch:
		var doc UserDoc
		require.NoError(t, snap.Decode(&doc))
		assert.Equal(t, []int64{5}, doc.SavedGames)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestMemoryWatch_TargetsOneDocument(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	ch, stop := store.Watch(CollectionUsers, "u1")
	defer stop()

	require.NoError(t, store.Set(ctx, CollectionUsers, "u2", UserDoc{SavedGames: []int64{9}}))

	select {
	case <-ch:
		t.Fatal("received a snapshot for a different document")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryWatch_StopClosesChannelIdempotently(t *testing.T) {
	t.Parallel()

	store := NewMemory()

	ch, stop := store.Watch(CollectionUsers, "u1")
	stop()
	stop()

	_, open := <-ch
	assert.False(t, open)

	// writes after stop do not panic
	require.NoError(t, store.Set(context.Background(), CollectionUsers, "u1", UserDoc{}))
}
