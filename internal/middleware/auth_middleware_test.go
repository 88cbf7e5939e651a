package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"umbrella-backend-go/internal/models"
)

func runRequireRole(t *testing.T, profile *models.UserProfile, min models.Role) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if profile != nil {
		c.Set(ContextProfile, profile)
	}

	RequireRole(min)(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return recorder
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name     string
		profile  *models.UserProfile
		min      models.Role
		expected int
	}{
		{"admin passes admin gate", &models.UserProfile{Role: models.RoleAdmin}, models.RoleAdmin, http.StatusOK},
		{"owner passes admin gate", &models.UserProfile{Role: models.RoleOwner}, models.RoleAdmin, http.StatusOK},
		{"user blocked from admin gate", &models.UserProfile{Role: models.RoleUser}, models.RoleAdmin, http.StatusForbidden},
		{"admin blocked from owner gate", &models.UserProfile{Role: models.RoleAdmin}, models.RoleOwner, http.StatusForbidden},
		{"unknown role blocked", &models.UserProfile{Role: models.Role("root")}, models.RoleUser, http.StatusForbidden},
		{"missing profile blocked", nil, models.RoleUser, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := runRequireRole(t, tc.profile, tc.min)
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

func TestProfileFromContextWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextProfile, "not a profile")
	assert.Nil(t, ProfileFromContext(c))
}
