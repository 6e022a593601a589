package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/internal/app/docstore"
	"gamevault/internal/pkg/errs"
)

func TestSubmit_RejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())
	ctx := context.Background()

	for _, value := range []int{0, -1, 6, 100} {
		customErr := svc.Submit(ctx, "u1", 1, value)
		require.NotNil(t, customErr, "value %d must be rejected", value)
		assert.Equal(t, errs.ErrRatingOutOfRange, customErr.Code)
	}

	// nothing was written
	agg, customErr := svc.Aggregate(ctx, 1)
	require.Nil(t, customErr)
	assert.Zero(t, agg.RatingCount)
}

func TestSubmit_FirstRatingCreatesAggregate(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemory()
	svc := NewService(store)
	ctx := context.Background()

	require.Nil(t, svc.Submit(ctx, "u1", 42, 4))

	agg, customErr := svc.Aggregate(ctx, 42)
	require.Nil(t, customErr)
	assert.Equal(t, []string{"u1"}, agg.UserIDs)
	assert.Equal(t, 1, agg.RatingCount)
	assert.Equal(t, 4.0, agg.RatingSum)
	assert.Equal(t, 4.0, agg.Average())

	// the user's own ratings map records the value too
	snap, err := store.Get(ctx, docstore.CollectionUsers, "u1")
	require.NoError(t, err)
	var doc docstore.UserDoc
	require.NoError(t, snap.Decode(&doc))
	assert.Equal(t, map[int64]int{42: 4}, doc.Ratings)
}

func TestSubmit_ReRatingAdjustsSumNotCount(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())
	ctx := context.Background()

	require.Nil(t, svc.Submit(ctx, "u1", 42, 5))
	require.Nil(t, svc.Submit(ctx, "u1", 42, 2))

	agg, customErr := svc.Aggregate(ctx, 42)
	require.Nil(t, customErr)
	assert.Equal(t, 1, agg.RatingCount)
	assert.Equal(t, 2.0, agg.RatingSum)
	assert.Equal(t, 2.0, agg.Average())
}

func TestSubmit_DistinctUsersAccumulate(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())
	ctx := context.Background()

	require.Nil(t, svc.Submit(ctx, "u1", 42, 5))
	require.Nil(t, svc.Submit(ctx, "u2", 42, 3))
	require.Nil(t, svc.Submit(ctx, "u3", 42, 1))

	agg, customErr := svc.Aggregate(ctx, 42)
	require.Nil(t, customErr)
	assert.Equal(t, 3, agg.RatingCount)
	assert.Equal(t, 9.0, agg.RatingSum)
	assert.Equal(t, 3.0, agg.Average())
}

func TestSubmit_ReRatingAfterOthersKeepsCountConsistent(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())
	ctx := context.Background()

	require.Nil(t, svc.Submit(ctx, "u1", 42, 5))
	require.Nil(t, svc.Submit(ctx, "u2", 42, 1))
	require.Nil(t, svc.Submit(ctx, "u1", 42, 3))

	agg, customErr := svc.Aggregate(ctx, 42)
	require.Nil(t, customErr)
	assert.Equal(t, 2, agg.RatingCount)
	assert.Equal(t, len(agg.UserIDs), agg.RatingCount)
	assert.Equal(t, 4.0, agg.RatingSum)
	assert.Equal(t, 2.0, agg.Average())
}

func TestSubmit_RatingsAreIndependentPerGame(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())
	ctx := context.Background()

	require.Nil(t, svc.Submit(ctx, "u1", 1, 5))
	require.Nil(t, svc.Submit(ctx, "u1", 2, 1))

	first, customErr := svc.Aggregate(ctx, 1)
	require.Nil(t, customErr)
	second, customErr := svc.Aggregate(ctx, 2)
	require.Nil(t, customErr)

	assert.Equal(t, 5.0, first.RatingSum)
	assert.Equal(t, 1.0, second.RatingSum)
}

func TestAggregate_UnratedGameIsZero(t *testing.T) {
	t.Parallel()

	svc := NewService(docstore.NewMemory())

	agg, customErr := svc.Aggregate(context.Background(), 999)
	require.Nil(t, customErr)
	assert.Zero(t, agg.RatingCount)
	assert.Zero(t, agg.Average())
}
