package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

const OTPLength = 6

var otpMax = big.NewInt(1_000_000)

// GenerateOTP returns a zero padded six digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

func OTPMatches(stored *string, given string) bool {
	if stored == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(given)) == 1
}

// OTPExpired treats a missing expiry as expired.
func OTPExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || now.After(*expiresAt)
}
