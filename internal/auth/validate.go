package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxNameLetters = 20
	maxNickname    = 10
	passwordLength = 6
)

// DefaultEmailDomains are the e-mail domains accepted at registration.
var DefaultEmailDomains = []string{"gmail.com", "hotmail.com", "ufrpe.br"}

// ValidateName accepts up to 20 letters; spaces are allowed and not counted.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name: %w", ErrEmptyField)
	}
	letters := strings.ReplaceAll(name, " ", "")
	if utf8.RuneCountInString(letters) > maxNameLetters {
		return fmt.Errorf("%w: more than %d letters", ErrInvalidName, maxNameLetters)
	}
	for _, r := range letters {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: %q is not a letter", ErrInvalidName, r)
		}
	}
	return nil
}

// ValidateNickname accepts up to 10 characters without spaces.
func ValidateNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return fmt.Errorf("nickname: %w", ErrEmptyField)
	}
	if strings.ContainsFunc(nickname, unicode.IsSpace) {
		return fmt.Errorf("%w: contains spaces", ErrInvalidNickname)
	}
	if utf8.RuneCountInString(nickname) > maxNickname {
		return fmt.Errorf("%w: more than %d characters", ErrInvalidNickname, maxNickname)
	}
	return nil
}

// ValidateEmail checks the address shape and that its domain is one of domains.
func ValidateEmail(email string, domains []string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email: %w", ErrEmptyField)
	}
	if strings.ContainsFunc(email, unicode.IsSpace) {
		return fmt.Errorf("%w: contains spaces", ErrInvalidEmail)
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return fmt.Errorf("%w: missing @", ErrInvalidEmail)
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if domain == strings.ToLower(d) {
			return nil
		}
	}
	return fmt.Errorf("%w: domain %q not accepted (use %s)", ErrInvalidEmail, domain, strings.Join(domains, ", "))
}

// ValidatePassword accepts exactly 6 characters made of digits and symbols.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password: %w", ErrEmptyField)
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		return fmt.Errorf("%w: contains spaces", ErrInvalidPassword)
	}
	if utf8.RuneCountInString(password) != passwordLength {
		return fmt.Errorf("%w: must have exactly %d characters", ErrInvalidPassword, passwordLength)
	}
	if strings.ContainsFunc(password, unicode.IsLetter) {
		return fmt.Errorf("%w: letters are not allowed", ErrInvalidPassword)
	}
	return nil
}

// ValidatePasswordPair validates password and checks the confirmation matches.
func ValidatePasswordPair(password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if confirm == "" {
		return fmt.Errorf("confirmation: %w", ErrEmptyField)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
