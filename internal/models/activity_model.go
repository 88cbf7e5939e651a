package models

// ActivityType classifies one entry in the activity log.
type ActivityType string

const (
	ActivityBorrow      ActivityType = "borrow"
	ActivityReturn      ActivityType = "return"
	ActivityAdminUpdate ActivityType = "admin_update"
)

// ActivityUserInfo is the denormalized profile snapshot attached to borrow
// activities so the feed can be rendered without a join against users/.
type ActivityUserInfo struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Grade         string `json:"grade,omitempty"`
	StudentNumber string `json:"studentNumber,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Activity is one immutable entry in the append-only log at
// activities/{pushKey}. ID carries the push key on reads; it is empty on
// writes and therefore never stored inside the value.
type Activity struct {
	ID         string            `json:"id,omitempty"`
	Type       ActivityType      `json:"type"`
	UmbrellaID int               `json:"umbrellaId"`
	Location   Zone              `json:"location"`
	Timestamp  int64             `json:"timestamp"` // epoch millis
	Nickname   string            `json:"nickname,omitempty"`
	Note       string            `json:"note,omitempty"`
	UserInfo   *ActivityUserInfo `json:"userInfo,omitempty"`
}
