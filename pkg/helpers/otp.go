package helpers

import (
	"crypto/rand"
	"math/big"
)

// OTP helpers

const (
	otpMin  = 100000
	otpSpan = 900000 // codes are drawn from [100000, 999999]
)

// GenOTPCode generates a 6-digit OTP code drawn uniformly from
// 100000-999999. An entropy source failure is returned to the caller and
// should be treated as fatal misconfiguration, not retried.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(n, big.NewInt(otpMin)).String(), nil
}
