package api

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the standard body for operations with no payload.
type SuccessResponse struct {
	Message string `json:"message"`
}

// SeedResponse reports how many umbrella records a seed run created.
type SeedResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}

// ForceReturnResponse reports how many umbrellas a force return touched.
type ForceReturnResponse struct {
	Message  string `json:"message"`
	Returned int    `json:"returned"`
}

// TemporaryPasswordResponse carries a freshly issued temporary password.
// This is the only place the clear text ever appears.
type TemporaryPasswordResponse struct {
	Password  string `json:"password"`
	ExpiresIn string `json:"expiresIn"`
}

// PasswordResetResponse carries the generated reset link. Delivering it
// to the student is up to the caller.
type PasswordResetResponse struct {
	ResetLink string `json:"resetLink"`
}

// VAPIDKeyResponse exposes the public half of the push key pair so the
// browser can subscribe.
type VAPIDKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// ZonesResponse lists the campus zones in canonical order.
type ZonesResponse struct {
	Zones []ZoneInfo `json:"zones"`
}

// ZoneInfo is one zone with the umbrella ids homed there.
type ZoneInfo struct {
	Zone        string `json:"zone"`
	UmbrellaIDs []int  `json:"umbrellaIds"`
}
