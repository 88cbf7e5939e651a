package core

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// topUmbrellaCount bounds the usage ranking in the report.
const topUmbrellaCount = 5

// statsService implements the StatsService interface. Reports are
// recomputed on demand from the capped activity feed plus the current
// fleet records; nothing is pre-aggregated.
type statsService struct {
	umbrellaRepo db.UmbrellaRepository
	activityRepo db.ActivityRepository
	feedLimit    int
	logger       *zap.Logger
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(ur db.UmbrellaRepository, ar db.ActivityRepository, feedLimit int, logger *zap.Logger) StatsService {
	if feedLimit <= 0 {
		feedLimit = DefaultFeedLimit
	}
	return &statsService{
		umbrellaRepo: ur,
		activityRepo: ar,
		feedLimit:    feedLimit,
		logger:       logger,
	}
}

func (s *statsService) Report(ctx context.Context, now time.Time) (*models.UsageReport, error) {
	umbrellas, err := s.umbrellaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.List(ctx, s.feedLimit)
	if err != nil {
		return nil, err
	}

	report := &models.UsageReport{
		Today:           bucketStats(activities, startOfDay(now)),
		Week:            bucketStats(activities, startOfWeek(now)),
		Month:           bucketStats(activities, startOfMonth(now)),
		Zones:           zoneOccupancy(umbrellas),
		Hourly:          hourlyBorrows(activities, now.Location()),
		TopUmbrellas:    topUmbrellas(activities),
		TotalUmbrellas:  len(umbrellas),
		TotalActivities: len(activities),
	}
	report.PeakHour = peakBorrowHour(report.Hourly)
	for _, z := range report.Zones {
		report.Available += z.Available
		report.Borrowed += z.Borrowed
	}
	return report, nil
}

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns local midnight of the Monday of the week containing
// t. Sunday counts as the last day of the week, not the first.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// startOfMonth returns local midnight of the first day of the month
// containing t.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// bucketStats counts borrows, returns and distinct nicknames among
// entries at or after the cutoff. The cutoff itself is inside the bucket.
func bucketStats(activities []*models.Activity, cutoff time.Time) models.PeriodStats {
	cutoffMillis := cutoff.UnixMilli()
	var stats models.PeriodStats
	users := make(map[string]struct{})
	for _, a := range activities {
		if a.Timestamp < cutoffMillis {
			continue
		}
		switch a.Type {
		case models.ActivityBorrow:
			stats.Borrows++
		case models.ActivityReturn:
			stats.Returns++
		}
		if a.Nickname != "" {
			users[a.Nickname] = struct{}{}
		}
	}
	stats.UniqueUsers = len(users)
	return stats
}

func zoneOccupancy(umbrellas []*models.Umbrella) []models.ZoneOccupancy {
	out := make([]models.ZoneOccupancy, 0, len(zoneOrder))
	for _, zone := range Zones() {
		occ := models.ZoneOccupancy{Zone: zone}
		for _, u := range umbrellas {
			if u.CurrentLocation != zone {
				continue
			}
			if u.Status == models.StatusBorrowed {
				occ.Borrowed++
			} else {
				occ.Available++
			}
		}
		out = append(out, occ)
	}
	return out
}

// hourlyBorrows buckets borrow entries into the 24 local hours of day.
func hourlyBorrows(activities []*models.Activity, loc *time.Location) []models.HourlyBorrows {
	buckets := make([]models.HourlyBorrows, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, a := range activities {
		if a.Type != models.ActivityBorrow {
			continue
		}
		hour := time.UnixMilli(a.Timestamp).In(loc).Hour()
		buckets[hour].Borrows++
	}
	return buckets
}

// peakBorrowHour picks the busiest bucket; on a tie the earliest hour
// wins.
func peakBorrowHour(hourly []models.HourlyBorrows) models.HourlyBorrows {
	var peak models.HourlyBorrows
	for _, b := range hourly {
		if b.Borrows > peak.Borrows {
			peak = b
		}
	}
	return peak
}

func topUmbrellas(activities []*models.Activity) []models.UmbrellaUsage {
	counts := make(map[int]int)
	for _, a := range activities {
		if a.UmbrellaID < MinUmbrellaID || a.UmbrellaID > MaxUmbrellaID {
			continue
		}
		counts[a.UmbrellaID]++
	}

	usage := make([]models.UmbrellaUsage, 0, len(counts))
	for id, count := range counts {
		zone, err := ZoneForUmbrella(id)
		if err != nil {
			continue
		}
		usage = append(usage, models.UmbrellaUsage{ID: id, Count: count, Location: zone})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].ID < usage[j].ID
	})
	if len(usage) > topUmbrellaCount {
		usage = usage[:topUmbrellaCount]
	}
	return usage
}
