package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationMethodValid(t *testing.T) {
	assert.True(t, MethodEmailOTP.Valid())
	assert.True(t, MethodSMSOTP.Valid())
	assert.True(t, MethodEmailLink.Valid())
	assert.False(t, VerificationMethod("").Valid())
	assert.False(t, VerificationMethod("carrier-pigeon").Valid())
}

func TestChallengeLifecycle(t *testing.T) {
	u := &User{}
	assert.False(t, u.HasChallenge())

	now := time.Now()
	u.SetChallenge("123456", now)
	assert.True(t, u.HasChallenge())
	assert.Equal(t, "123456", u.OTPCode)
	assert.Equal(t, now, u.OTPIssuedAt)

	// a fresh challenge supersedes the old one
	later := now.Add(time.Minute)
	u.SetChallenge("654321", later)
	assert.Equal(t, "654321", u.OTPCode)
	assert.Equal(t, later, u.OTPIssuedAt)

	u.ClearChallenge()
	assert.False(t, u.HasChallenge())
	assert.True(t, u.OTPIssuedAt.IsZero())
}
