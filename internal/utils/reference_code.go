package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// ReferenceCodePrefix is the federation prefix for registration codes
const ReferenceCodePrefix = "SPF"

// GenerateReferenceCode creates a registration code in the format
// "SPF-YYYY-NNNNN" where YYYY is the current year and NNNNN is a random
// 5-digit number. Uniqueness is enforced by the database constraint;
// callers retry on collision.
func GenerateReferenceCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}

	return fmt.Sprintf("%s-%d-%05d", ReferenceCodePrefix, now.Year(), n.Int64()), nil
}
