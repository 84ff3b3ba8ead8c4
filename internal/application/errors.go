package application

import "errors"

// Error kinds surfaced by the verification state machine. Handlers map
// these onto the wire envelope; none of them crash the process.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password below strength floor")
	ErrPhoneRequired      = errors.New("phone number required for sms verification")
	ErrUnknownMethod      = errors.New("unknown verification method")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPMismatch        = errors.New("otp mismatch")
	ErrTokenInvalid       = errors.New("invalid or expired token")
)
