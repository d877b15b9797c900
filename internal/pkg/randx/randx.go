/*
Package randx provides functions for generating cryptographically secure random numbers and unique identifiers.

It generates the six-digit login codes mailed to users, Base62 guest ids for anonymous live
viewers, and UUIDs for uploaded files and live events.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// LoginCodeLength is the number of decimal digits in a login code.
	LoginCodeLength = 6

	// GuestIDPrefix is the prefix of ids handed to anonymous live viewers.
	GuestIDPrefix = "guest_"

	// GuestIDRawLength is the fixed length of the Base62 part of the GuestID.
	GuestIDRawLength = 6
)

// LoginCode returns a zero-padded decimal code of LoginCodeLength digits.
func LoginCode() (string, error) {
	limit := big.NewInt(1)
	for range LoginCodeLength {
		limit.Mul(limit, big.NewInt(10))
	}

	num, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number for login code: %w", err)
	}

	return fmt.Sprintf("%0*d", LoginCodeLength, num.Int64()), nil
}

// IsValidLoginCode checks that code consists of exactly LoginCodeLength digits.
func IsValidLoginCode(code string) bool {
	if len(code) != LoginCodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// GuestID returns GuestIDPrefix followed by GuestIDRawLength Base62 characters.
func GuestID() (string, error) {
	result := make([]byte, GuestIDRawLength)

	for i := range GuestIDRawLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for guest id: %w", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return GuestIDPrefix + string(result), nil
}

// FileID generates the random part of an object storage key.
func FileID() string {
	return uuid.New().String()
}

// EventID generates a standard UUID v4 string to identify a live event.
func EventID() string {
	return uuid.New().String()
}
