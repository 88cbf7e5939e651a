package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	testCases := []struct {
		name     string
		role     Role
		min      Role
		expected bool
	}{
		{"owner has owner privileges", RoleOwner, RoleOwner, true},
		{"owner has admin privileges", RoleOwner, RoleAdmin, true},
		{"owner has user privileges", RoleOwner, RoleUser, true},
		{"admin lacks owner privileges", RoleAdmin, RoleOwner, false},
		{"admin has admin privileges", RoleAdmin, RoleAdmin, true},
		{"admin has user privileges", RoleAdmin, RoleUser, true},
		{"user lacks owner privileges", RoleUser, RoleOwner, false},
		{"user lacks admin privileges", RoleUser, RoleAdmin, false},
		{"user has user privileges", RoleUser, RoleUser, true},
		{"unknown role grants nothing", Role("superuser"), RoleUser, false},
		{"empty role grants nothing", Role(""), RoleUser, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.role.AtLeast(tc.min))
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserProfileFullName(t *testing.T) {
	p := &UserProfile{FirstName: "Somchai", LastName: "Jaidee"}
	assert.Equal(t, "Somchai Jaidee", p.FullName())

	p = &UserProfile{FirstName: "Som"}
	assert.Equal(t, "Som", p.FullName())
}

func TestUserProfileSanitized(t *testing.T) {
	p := &UserProfile{UID: "u1", TempPasswordHash: "$2a$10$secret"}
	out := p.Sanitized()
	assert.Empty(t, out.TempPasswordHash)
	assert.Equal(t, "u1", out.UID)
	assert.Equal(t, "$2a$10$secret", p.TempPasswordHash, "original must be untouched")
}
