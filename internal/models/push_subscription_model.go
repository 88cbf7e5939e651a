package models

// PushSubscription holds a browser web-push subscription scoped to one
// zone. ID carries the database key on reads and is never stored inside
// the value.
type PushSubscription struct {
	ID        string `json:"id,omitempty"`
	Endpoint  string `json:"endpoint"`
	P256DH    string `json:"p256dh"`
	Auth      string `json:"auth"`
	Zone      Zone   `json:"zone"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
}
