package models

import "strings"

// UserProfile is the application-side record at users/{uid} for a Firebase
// Auth user. The UID is owned by the auth service and doubles as the
// database key.
//
// Temporary-password bookkeeping stores only a bcrypt hash and an expiry;
// the generated password itself is shown once to the owner who issued it
// and is never persisted in recoverable form.
type UserProfile struct {
	UID           string `json:"uid"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Grade         string `json:"grade,omitempty"`
	StudentNumber string `json:"studentNumber,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	CreatedAt     int64  `json:"createdAt"` // epoch millis
	UpdatedAt     int64  `json:"updatedAt"`

	TempPasswordHash      string `json:"tempPasswordHash,omitempty"`
	TempPasswordExpires   int64  `json:"tempPasswordExpires,omitempty"`
	RequirePasswordChange bool   `json:"requirePasswordChange,omitempty"`
}

// FullName is the display name used for borrower records and activity
// entries.
func (p *UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Sanitized returns a copy safe to return to API clients: internal
// credential bookkeeping is stripped.
func (p *UserProfile) Sanitized() *UserProfile {
	out := *p
	out.TempPasswordHash = ""
	return &out
}
