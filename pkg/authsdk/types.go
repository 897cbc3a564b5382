package authsdk

import "time"

// ============================================================================
// Error Response Types
// ============================================================================

// ErrorResponse is the body of a failed auth endpoint call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// GuardErrorResponse is written by the bearer and role guards, and by the
// existence checks on store failure.
type GuardErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
}

// ============================================================================
// Account Types
// ============================================================================

// User is the public view of an account. It never carries the password.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	UserType      string     `json:"userType"`
	Role          string     `json:"role"`
	IsAdmin       string     `json:"isAdmin,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SignupRequest registers an Individual or Corporate account. Either the
// plain fields or EncryptedData (an envelope holding them) are sent.
type SignupRequest struct {
	UserType      string `json:"userType,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Password      string `json:"password,omitempty"`
	EncryptedData string `json:"encryptedData,omitempty"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		User User `json:"user"`
	} `json:"data"`
}

// LoginRequest authenticates by email (Corporate, Admin, SuperAdmin) or by
// phone (Individual).
type LoginRequest struct {
	UserType string `json:"userType"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type LoginData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginResponse is either sealed (EncryptedData set) or plaintext (Data
// set).
type LoginResponse struct {
	Success       bool       `json:"success"`
	EncryptedData string     `json:"encryptedData,omitempty"`
	Message       string     `json:"message,omitempty"`
	Data          *LoginData `json:"data,omitempty"`
}

type ForgotPasswordRequest struct {
	UserType string `json:"userType"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type ResetPasswordRequest struct {
	Token         string `json:"token,omitempty"`
	Password      string `json:"password,omitempty"`
	EncryptedData string `json:"encryptedData,omitempty"`
}

// MessageResponse is returned by operations that only report success.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type CheckUserEmailResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Exists bool         `json:"exists"`
		User   *UserSummary `json:"user,omitempty"`
	} `json:"data"`
}

// UserResponse wraps a single account.
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest describes the first SuperAdmin account.
type BootstrapRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type BootstrapResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
