package service

import (
	"errors"
	"net/http"
)

// Kind classifies service failures. Two *Error values match under
// errors.Is when their kinds are equal, whatever their message.
type Kind string

const (
	KindValidation               Kind = "validation"
	KindForbiddenSignup          Kind = "forbidden_signup"
	KindInvalidUserType          Kind = "invalid_user_type"
	KindMissingCredentials       Kind = "missing_credentials"
	KindInvalidCredentials       Kind = "invalid_credentials"
	KindUnauthenticated          Kind = "unauthenticated"
	KindForbidden                Kind = "forbidden"
	KindInvalidEncryptedData     Kind = "invalid_encrypted_data"
	KindInvalidVerificationToken Kind = "invalid_verification_token"
	KindInvalidResetRequest      Kind = "invalid_reset_request"
	KindUserExists               Kind = "user_exists"
	KindAlreadyBootstrapped      Kind = "already_bootstrapped"
	KindNotFound                 Kind = "not_found"
	KindInternal                 Kind = "internal"
)

// Error is a status-carrying failure. Controllers write StatusCode and
// Message verbatim; Err keeps the underlying cause for logs.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// withMessage returns a copy of e carrying msg.
func (e *Error) withMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

// wrap returns a copy of e with cause attached.
func (e *Error) wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

var (
	ErrValidation = &Error{
		Kind: KindValidation, StatusCode: http.StatusBadRequest,
		Message: "Invalid request",
	}
	ErrForbiddenSignup = &Error{
		Kind: KindForbiddenSignup, StatusCode: http.StatusForbidden,
		Message: "Signup is only allowed for Individual and Corporate users.",
	}
	ErrInvalidUserType = &Error{
		Kind: KindInvalidUserType, StatusCode: http.StatusBadRequest,
		Message: "Invalid userType.",
	}
	ErrMissingCredentials = &Error{
		Kind: KindMissingCredentials, StatusCode: http.StatusBadRequest,
		Message: "Email and password are required for this user type.",
	}
	ErrInvalidCredentials = &Error{
		Kind: KindInvalidCredentials, StatusCode: http.StatusUnauthorized,
		Message: "Invalid credentials",
	}
	ErrUnauthenticated = &Error{
		Kind: KindUnauthenticated, StatusCode: http.StatusUnauthorized,
		Message: "Not authorized",
	}
	ErrForbidden = &Error{
		Kind: KindForbidden, StatusCode: http.StatusForbidden,
		Message: "Forbidden: Access denied",
	}
	ErrInvalidEncryptedData = &Error{
		Kind: KindInvalidEncryptedData, StatusCode: http.StatusBadRequest,
		Message: "Invalid encrypted data",
	}
	ErrInvalidVerificationToken = &Error{
		Kind: KindInvalidVerificationToken, StatusCode: http.StatusBadRequest,
		Message: "Invalid or expired verification token",
	}
	ErrInvalidResetRequest = &Error{
		Kind: KindInvalidResetRequest, StatusCode: http.StatusBadRequest,
		Message: "Invalid or expired reset token",
	}
	ErrUserExists = &Error{
		Kind: KindUserExists, StatusCode: http.StatusBadRequest,
		Message: "User already exists",
	}
	ErrNotFound = &Error{
		Kind: KindNotFound, StatusCode: http.StatusNotFound,
		Message: "User not found",
	}
	ErrInternal = &Error{
		Kind: KindInternal, StatusCode: http.StatusInternalServerError,
		Message: "Internal server error",
	}

	// ErrLoginFailed is the 500 login answers with when the failure is not
	// about the credentials.
	ErrLoginFailed = ErrInternal.withMessage("Login failed")
)

// Missing-credential messages per login branch.
const (
	msgEmailAndPassword = "Email and password are required for this user type."
	msgPhoneAndPassword = "Phone and password are required for Individual login."
)

// AsError converts err into an *Error. Anything that is not already one
// becomes ErrInternal wrapping err.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return ErrInternal.wrap(err)
}

func internal(err error) *Error { return ErrInternal.wrap(err) }
