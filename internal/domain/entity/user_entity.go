package entity

import (
	"time"
)

// VerificationMethod selects the out-of-band channel a user chose at
// registration. It is immutable for the lifetime of the record.
type VerificationMethod string

const (
	MethodEmailOTP  VerificationMethod = "email-otp"
	MethodSMSOTP    VerificationMethod = "sms-otp"
	MethodEmailLink VerificationMethod = "email-link"
)

// Valid reports whether m is one of the known channel values.
func (m VerificationMethod) Valid() bool {
	switch m {
	case MethodEmailOTP, MethodSMSOTP, MethodEmailLink:
		return true
	}
	return false
}

// VerificationStatus tracks whether the user has proven channel ownership.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusFailed   VerificationStatus = "failed"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the aggregate root for the identity domain. The record is the
// single owner of its verification state: the active code challenge lives
// in OTPCode/OTPIssuedAt and must be cleared the moment the user becomes
// verified. Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Role        Role
	Method      VerificationMethod
	Status      VerificationStatus
	OTPCode     string
	OTPIssuedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetChallenge records a fresh code challenge, superseding any prior one.
func (u *User) SetChallenge(code string, at time.Time) {
	u.OTPCode = code
	u.OTPIssuedAt = at
}

// ClearChallenge removes the outstanding challenge so it cannot be replayed.
func (u *User) ClearChallenge() {
	u.OTPCode = ""
	u.OTPIssuedAt = time.Time{}
}

// HasChallenge reports whether a code challenge is outstanding.
func (u *User) HasChallenge() bool {
	return u.OTPCode != ""
}
