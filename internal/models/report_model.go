package models

// PeriodStats aggregates activity counts over one time bucket.
// UniqueUsers counts distinct non-empty nicknames, as in the original
// dashboard.
type PeriodStats struct {
	Borrows     int `json:"borrows"`
	Returns     int `json:"returns"`
	UniqueUsers int `json:"uniqueUsers"`
}

// ZoneOccupancy is the current available/borrowed split at one zone.
type ZoneOccupancy struct {
	Zone      Zone `json:"zone"`
	Available int  `json:"available"`
	Borrowed  int  `json:"borrowed"`
}

// HourlyBorrows is the borrow count for one hour-of-day bucket (0-23).
type HourlyBorrows struct {
	Hour    int `json:"hour"`
	Borrows int `json:"borrows"`
}

// UmbrellaUsage ranks one umbrella by how often it appears in the
// activity log.
type UmbrellaUsage struct {
	ID       int  `json:"id"`
	Count    int  `json:"count"`
	Location Zone `json:"location"`
}

// UsageReport is the full analytics payload, recomputed from the capped
// activity feed and the current umbrella records on every request.
type UsageReport struct {
	Today PeriodStats `json:"today"`
	Week  PeriodStats `json:"week"`
	Month PeriodStats `json:"month"`

	Zones        []ZoneOccupancy `json:"zones"`
	PeakHour     HourlyBorrows   `json:"peakHour"`
	Hourly       []HourlyBorrows `json:"hourly"`
	TopUmbrellas []UmbrellaUsage `json:"topUmbrellas"`

	TotalUmbrellas  int `json:"totalUmbrellas"`
	Available       int `json:"available"`
	Borrowed        int `json:"borrowed"`
	TotalActivities int `json:"totalActivities"`
}
