package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// Purpose tells which flow a Challenge completes.
type Purpose int

const (
	PurposeRegister Purpose = iota
	PurposeReset
)

func (p Purpose) String() string {
	switch p {
	case PurposeRegister:
		return "register"
	case PurposeReset:
		return "reset"
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// Challenge is a pending e-mail verification. It carries the data that is
// committed once the player types the right code.
type Challenge struct {
	Purpose Purpose
	Email   string

	code      string
	expiresAt time.Time
	used      bool

	account     Account
	newPassword string
}

// ExpiresAt returns when the current code stops being accepted.
func (c *Challenge) ExpiresAt() time.Time {
	return c.expiresAt
}

// Verify checks input against the current code. A code is accepted once.
func (c *Challenge) Verify(input string, now time.Time) error {
	input = strings.TrimSpace(input)
	if !ValidCodeFormat(input) {
		return ErrCodeFormat
	}
	if c.used {
		return ErrCodeUsed
	}
	if now.After(c.expiresAt) {
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(input), []byte(c.code)) != 1 {
		return ErrCodeMismatch
	}
	c.used = true
	return nil
}

func (c *Challenge) rearm(code string, expiresAt time.Time) {
	c.code = code
	c.expiresAt = expiresAt
	c.used = false
}

// ValidCodeFormat reports whether s is exactly six ASCII digits.
func ValidCodeFormat(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var codeSpace = big.NewInt(1_000_000)

// GenerateCode draws a uniformly random six digit code from r.
// A nil reader uses crypto/rand.
func GenerateCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
