package tui

import (
	"errors"
	"strings"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/i18n"
)

var errorKeys = []struct {
	err error
	key string
}{
	{auth.ErrEmptyField, i18n.ErrEmptyField},
	{auth.ErrInvalidName, i18n.ErrInvalidName},
	{auth.ErrInvalidNickname, i18n.ErrInvalidNickname},
	{auth.ErrInvalidPassword, i18n.ErrInvalidPassword},
	{auth.ErrPasswordMismatch, i18n.ErrPasswordMismatch},
	{auth.ErrEmailTaken, i18n.ErrEmailTaken},
	{auth.ErrNicknameTaken, i18n.ErrNicknameTaken},
	{auth.ErrDuplicate, i18n.ErrEmailTaken},
	{auth.ErrUnknownEmail, i18n.ErrUnknownEmail},
	{auth.ErrTooManyAttempts, i18n.ErrTooManyAttempts},
	{auth.ErrCodeFormat, i18n.ErrCodeFormat},
	{auth.ErrCodeExpired, i18n.ErrCodeExpired},
	{auth.ErrCodeMismatch, i18n.ErrCodeMismatch},
	{auth.ErrCodeUsed, i18n.ErrCodeUsed},
	{auth.ErrSendFailed, i18n.ErrSendFailed},
	{engine.ErrNoSelection, i18n.ErrNoSelection},
	{engine.ErrAtRoot, i18n.ErrAtRoot},
	{engine.ErrCorruption, i18n.ErrCorruption},
	{engine.ErrMalformedSegment, i18n.ErrCorruption},
	{errSaveFailed, i18n.ErrSaveFailed},
}

// errorText turns err into a message for the player.
func (m model) errorText(err error) string {
	var attempts *auth.AttemptsError
	if errors.As(err, &attempts) && errors.Is(err, auth.ErrBadPassword) {
		return m.p.Sprintf(i18n.ErrBadPassword, attempts.Remaining)
	}
	if errors.Is(err, auth.ErrInvalidEmail) {
		return m.p.Sprintf(i18n.ErrInvalidEmail, strings.Join(m.opts.Accounts.EmailDomains(), ", "))
	}
	for _, ek := range errorKeys {
		if errors.Is(err, ek.err) {
			return m.p.Sprintf(ek.key)
		}
	}
	return m.p.Sprintf(i18n.ErrUnexpected, err.Error())
}
