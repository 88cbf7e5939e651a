package models

// RegisterRequest is the request body for creating a new student account.
// Phone numbers follow the original form validation: exactly 10 digits.
type RegisterRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Grade         string `json:"grade" binding:"required"`
	StudentNumber string `json:"studentNumber" binding:"required"`
	Phone         string `json:"phone" binding:"required,len=10,numeric"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
}

// UpdateProfileRequest is the self-service profile edit body. Pointers
// distinguish fields not provided from fields set to an empty value.
type UpdateProfileRequest struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Grade         *string `json:"grade,omitempty"`
	StudentNumber *string `json:"studentNumber,omitempty"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,len=10,numeric"`
}

// AdminUserUpdateRequest is the admin/owner edit body for another user's
// profile. Role changes are accepted only from an owner.
type AdminUserUpdateRequest struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Grade         *string `json:"grade,omitempty"`
	StudentNumber *string `json:"studentNumber,omitempty"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,len=10,numeric"`
	Role          *Role   `json:"role,omitempty"`
}

// PasswordResetRequest asks for a password-reset link for the given email.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PutSubscriptionRequest registers or replaces a web-push subscription for
// availability notifications at one zone.
type PutSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
	Zone     Zone   `json:"zone" binding:"required"`
}

// DeleteSubscriptionRequest removes a web-push subscription by endpoint.
type DeleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
