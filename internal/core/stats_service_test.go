package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/models"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func appendActivity(t *testing.T, repo *fakeActivityRepo, kind models.ActivityType, umbrellaID int, at time.Time, nickname string) {
	t.Helper()
	zone, err := ZoneForUmbrella(umbrellaID)
	require.NoError(t, err)
	_, err = repo.Append(context.Background(), &models.Activity{
		Type:       kind,
		UmbrellaID: umbrellaID,
		Location:   zone,
		Timestamp:  at.UnixMilli(),
		Nickname:   nickname,
	})
	require.NoError(t, err)
}

func TestStartOfWeekIsMonday(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			"wednesday",
			time.Date(2026, 6, 10, 15, 0, 0, 0, bangkok),
			time.Date(2026, 6, 8, 0, 0, 0, 0, bangkok),
		},
		{
			"monday maps to itself",
			time.Date(2026, 6, 8, 0, 0, 0, 0, bangkok),
			time.Date(2026, 6, 8, 0, 0, 0, 0, bangkok),
		},
		{
			"sunday belongs to the preceding monday",
			time.Date(2026, 6, 14, 23, 59, 0, 0, bangkok),
			time.Date(2026, 6, 8, 0, 0, 0, 0, bangkok),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, startOfWeek(tc.now).Equal(tc.expected),
				"got %v, expected %v", startOfWeek(tc.now), tc.expected)
		})
	}
}

func TestBucketStatsMidnightBoundary(t *testing.T) {
	repo := newFakeActivityRepo()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, bangkok)
	midnight := startOfDay(now)

	// Exactly at midnight counts for today; one millisecond before does not.
	appendActivity(t, repo, models.ActivityBorrow, 1, midnight, "Som")
	appendActivity(t, repo, models.ActivityBorrow, 2, midnight.Add(-time.Millisecond), "Nok")

	activities, err := repo.List(context.Background(), 50)
	require.NoError(t, err)

	stats := bucketStats(activities, midnight)
	assert.Equal(t, 1, stats.Borrows)
	assert.Equal(t, 1, stats.UniqueUsers)
}

func TestBucketStatsCountsDistinctNicknames(t *testing.T) {
	repo := newFakeActivityRepo()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, bangkok)

	appendActivity(t, repo, models.ActivityBorrow, 1, now, "Som")
	appendActivity(t, repo, models.ActivityReturn, 1, now.Add(time.Hour), "Som")
	appendActivity(t, repo, models.ActivityBorrow, 2, now.Add(2*time.Hour), "Nok")

	activities, err := repo.List(context.Background(), 50)
	require.NoError(t, err)

	stats := bucketStats(activities, startOfDay(now))
	assert.Equal(t, 2, stats.Borrows)
	assert.Equal(t, 1, stats.Returns)
	assert.Equal(t, 2, stats.UniqueUsers)
}

func TestPeakBorrowHourTieBreaksEarliest(t *testing.T) {
	hourly := make([]models.HourlyBorrows, 24)
	for h := range hourly {
		hourly[h].Hour = h
	}
	hourly[7].Borrows = 3
	hourly[16].Borrows = 3
	hourly[12].Borrows = 2

	peak := peakBorrowHour(hourly)
	assert.Equal(t, 7, peak.Hour)
	assert.Equal(t, 3, peak.Borrows)
}

func TestReportAssemblesFleetAndFeed(t *testing.T) {
	umbrellaRepo := newFakeUmbrellaRepo()
	activityRepo := newFakeActivityRepo()
	notifier := &fakeNotifier{}
	umbrellaSvc := NewUmbrellaService(umbrellaRepo, activityRepo, notifier, zap.NewNop()).(*umbrellaService)

	now := time.Date(2026, 6, 10, 14, 0, 0, 0, bangkok)
	umbrellaSvc.now = func() time.Time { return now }
	_, err := umbrellaSvc.Seed(context.Background())
	require.NoError(t, err)

	borrower := studentProfile()
	for _, id := range []int{1, 2, 8} {
		_, err := umbrellaSvc.Borrow(context.Background(), borrower, id)
		require.NoError(t, err)
	}
	_, err = umbrellaSvc.Return(context.Background(), borrower, 8)
	require.NoError(t, err)

	statsSvc := NewStatsService(umbrellaRepo, activityRepo, 50, zap.NewNop())
	report, err := statsSvc.Report(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Today.Borrows)
	assert.Equal(t, 1, report.Today.Returns)
	assert.Equal(t, 1, report.Today.UniqueUsers)

	assert.Equal(t, 21, report.TotalUmbrellas)
	assert.Equal(t, 19, report.Available)
	assert.Equal(t, 2, report.Borrowed)
	assert.Equal(t, 4, report.TotalActivities)

	require.Len(t, report.Zones, 3)
	assert.Equal(t, models.ZoneDome, report.Zones[0].Zone)
	assert.Equal(t, 2, report.Zones[0].Borrowed)
	assert.Equal(t, 5, report.Zones[0].Available)
	assert.Equal(t, 0, report.Zones[1].Borrowed)

	assert.Equal(t, 14, report.PeakHour.Hour)
	assert.Equal(t, 3, report.PeakHour.Borrows)

	require.NotEmpty(t, report.TopUmbrellas)
	assert.Equal(t, 8, report.TopUmbrellas[0].ID, "umbrella 8 has a borrow and a return")
	assert.Equal(t, 2, report.TopUmbrellas[0].Count)
}
