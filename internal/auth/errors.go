package auth

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidNickname  = errors.New("invalid nickname")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrEmailTaken      = errors.New("email already registered")
	ErrNicknameTaken   = errors.New("nickname already in use")
	ErrUnknownEmail    = errors.New("email not registered")
	ErrBadPassword     = errors.New("wrong password")
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	ErrCodeFormat   = errors.New("verification code must be 6 digits")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("verification code does not match")
	ErrCodeUsed     = errors.New("verification code already used")
	ErrSendFailed   = errors.New("could not send verification code")

	// ErrDuplicate is returned by a UserStore when a nickname or email is already stored.
	ErrDuplicate = errors.New("account already exists")
	// ErrNotFound is returned by a UserStore when no account matches.
	ErrNotFound = errors.New("account not found")
)

// AttemptsError reports a failed login together with the attempt counters.
// It unwraps to ErrBadPassword, or to ErrTooManyAttempts once the limit is hit.
type AttemptsError struct {
	Used      int
	Remaining int
	Err       error
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("%v (attempt %d, %d remaining)", e.Err, e.Used, e.Remaining)
}

func (e *AttemptsError) Unwrap() error {
	return e.Err
}
