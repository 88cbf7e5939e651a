package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/models"
)

func seedActivities(t *testing.T, repo *fakeActivityRepo, timestamps ...int64) {
	t.Helper()
	for _, ts := range timestamps {
		_, err := repo.Append(context.Background(), &models.Activity{
			Type:       models.ActivityBorrow,
			UmbrellaID: 1,
			Location:   models.ZoneDome,
			Timestamp:  ts,
		})
		require.NoError(t, err)
	}
}

func feedTimestamps(activities []*models.Activity) []int64 {
	out := make([]int64, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Timestamp)
	}
	return out
}

func TestRecentSortsNewestFirst(t *testing.T) {
	repo := newFakeActivityRepo()
	seedActivities(t, repo, 5, 1, 9, 3)
	svc := NewActivityService(repo, 50, zap.NewNop())

	feed, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 5, 3, 1}, feedTimestamps(feed))
}

func TestRecentAppliesLimit(t *testing.T) {
	repo := newFakeActivityRepo()
	seedActivities(t, repo, 5, 1, 9, 3)
	svc := NewActivityService(repo, 50, zap.NewNop())

	feed, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 5}, feedTimestamps(feed))
}

func TestRecentClampsToFeedCap(t *testing.T) {
	repo := newFakeActivityRepo()
	timestamps := make([]int64, 0, 60)
	for i := int64(1); i <= 60; i++ {
		timestamps = append(timestamps, i)
	}
	seedActivities(t, repo, timestamps...)
	svc := NewActivityService(repo, 50, zap.NewNop())

	feed, err := svc.Recent(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, feed, 50)
	assert.Equal(t, int64(60), feed[0].Timestamp)
	assert.Equal(t, int64(11), feed[49].Timestamp)
}

func TestClearAllRequiresAdmin(t *testing.T) {
	repo := newFakeActivityRepo()
	seedActivities(t, repo, 1, 2, 3)
	svc := NewActivityService(repo, 50, zap.NewNop())

	user := &models.UserProfile{UID: "u1", Role: models.RoleUser}
	assert.ErrorIs(t, svc.ClearAll(context.Background(), user), ErrForbidden)

	admin := &models.UserProfile{UID: "a1", Role: models.RoleAdmin}
	require.NoError(t, svc.ClearAll(context.Background(), admin))

	feed, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
