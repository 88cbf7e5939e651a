package models

// Zone is one of the three fixed umbrella storage locations on campus.
// The values are the Thai display names shown to students; they are also
// the strings persisted in the database, so they must never change once
// records exist.
type Zone string

const (
	ZoneDome      Zone = "ใต้โดม"
	ZoneSports    Zone = "ศูนย์กีฬา"
	ZoneCafeteria Zone = "โรงอาหาร"
)

// UmbrellaStatus is the lending state of a single umbrella.
type UmbrellaStatus string

const (
	StatusAvailable UmbrellaStatus = "available"
	StatusBorrowed  UmbrellaStatus = "borrowed"
)

// Borrower is the profile snapshot embedded in an umbrella record while it
// is on loan. Present iff the umbrella status is "borrowed".
type Borrower struct {
	UID       string `json:"uid"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// HistoryEvent is declared in the record schema for compatibility with the
// persisted layout. The authoritative event log lives in the activities
// collection; the write paths keep this array empty.
type HistoryEvent struct {
	Type      ActivityType `json:"type"`
	Timestamp int64        `json:"timestamp"`
	Location  Zone         `json:"location"`
	Nickname  string       `json:"nickname,omitempty"`
}

// Umbrella is one of the 21 fixed umbrella records at umbrellas/{id}.
// CurrentLocation is the zone the umbrella must be returned to; borrow and
// return never change it.
type Umbrella struct {
	ID              int            `json:"id"`
	Status          UmbrellaStatus `json:"status"`
	CurrentLocation Zone           `json:"currentLocation"`
	Borrower        *Borrower      `json:"borrower,omitempty"`
	History         []HistoryEvent `json:"history"`
}
