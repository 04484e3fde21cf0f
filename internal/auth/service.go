package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Account is a registered player.
type Account struct {
	Name     string
	Nickname string
	Email    string
	Password string
}

// Registration is the sign-up form as typed by the player.
type Registration struct {
	Name     string
	Nickname string
	Email    string
	Password string
	Confirm  string
}

// UserStore persists accounts. Implementations hash passwords themselves.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	NicknameExists(ctx context.Context, nickname string) (bool, error)
	// CreateAccount returns ErrDuplicate when the nickname or email is taken.
	CreateAccount(ctx context.Context, a Account) error
	VerifyCredentials(ctx context.Context, email, password string) (bool, error)
	// ResetPassword returns ErrNotFound when no account has this email.
	ResetPassword(ctx context.Context, email, newPassword string) error
	Nickname(ctx context.Context, email string) (string, error)
}

// CodeSender delivers verification codes.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, address, code string) error
}

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	CodeTTL          time.Duration
	MaxLoginAttempts int
	EmailDomains     []string
	Logger           *slog.Logger
	Now              func() time.Time
	Random           io.Reader
}

// Service runs registration, login and password reset.
type Service struct {
	store  UserStore
	sender CodeSender
	log    *slog.Logger

	ttl         time.Duration
	maxAttempts int
	domains     []string
	now         func() time.Time
	random      io.Reader

	mu       sync.Mutex
	failures map[string]int
}

// NewService creates a Service backed by store and sender.
func NewService(store UserStore, sender CodeSender, opts Options) *Service {
	s := &Service{
		store:       store,
		sender:      sender,
		log:         opts.Logger,
		ttl:         opts.CodeTTL,
		maxAttempts: opts.MaxLoginAttempts,
		domains:     opts.EmailDomains,
		now:         opts.Now,
		random:      opts.Random,
		failures:    make(map[string]int),
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 3
	}
	if len(s.domains) == 0 {
		s.domains = DefaultEmailDomains
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// EmailDomains returns the accepted registration domains.
func (s *Service) EmailDomains() []string {
	return s.domains
}

// MaxLoginAttempts returns how many wrong passwords are allowed before a reset.
func (s *Service) MaxLoginAttempts() int {
	return s.maxAttempts
}

// BeginRegistration validates the form, checks uniqueness and mails a code.
func (s *Service) BeginRegistration(ctx context.Context, r Registration) (*Challenge, error) {
	if err := s.validateRegistration(r); err != nil {
		return nil, err
	}
	email := NormalizeEmail(r.Email)
	nickname := strings.TrimSpace(r.Nickname)

	taken, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.store.NicknameExists(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("check nickname: %w", err)
	}
	if taken {
		return nil, ErrNicknameTaken
	}

	ch := &Challenge{
		Purpose: PurposeRegister,
		Email:   email,
		account: Account{
			Name:     strings.Join(strings.Fields(r.Name), " "),
			Nickname: nickname,
			Email:    email,
			Password: r.Password,
		},
	}
	if err := s.issue(ctx, ch); err != nil {
		return nil, err
	}
	s.log.Info("registration started", "nickname", nickname)
	return ch, nil
}

func (s *Service) validateRegistration(r Registration) error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if err := ValidateNickname(r.Nickname); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email, s.domains); err != nil {
		return err
	}
	return ValidatePasswordPair(r.Password, r.Confirm)
}

// CompleteRegistration checks the code and creates the account.
// It returns the new account's nickname.
func (s *Service) CompleteRegistration(ctx context.Context, ch *Challenge, code string) (string, error) {
	if ch == nil || ch.Purpose != PurposeRegister {
		return "", fmt.Errorf("complete registration: wrong challenge")
	}
	if err := ch.Verify(code, s.now()); err != nil {
		return "", err
	}
	if err := s.store.CreateAccount(ctx, ch.account); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.log.Warn("account created concurrently", "nickname", ch.account.Nickname)
			return "", err
		}
		return "", fmt.Errorf("create account: %w", err)
	}
	s.log.Info("account created", "nickname", ch.account.Nickname)
	return ch.account.Nickname, nil
}

// Resend mails a fresh code for ch. The previous code stops working.
func (s *Service) Resend(ctx context.Context, ch *Challenge) error {
	if ch == nil {
		return fmt.Errorf("resend: no challenge")
	}
	return s.issue(ctx, ch)
}

func (s *Service) issue(ctx context.Context, ch *Challenge) error {
	code, err := GenerateCode(s.random)
	if err != nil {
		return err
	}
	ch.rearm(code, s.now().Add(s.ttl))
	if err := s.sender.SendVerificationCode(ctx, ch.Email, code); err != nil {
		s.log.Error("send verification code", "purpose", ch.Purpose, "error", err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	s.log.Debug("verification code sent", "purpose", ch.Purpose, "expires_at", ch.expiresAt)
	return nil
}

// CheckEmail reports ErrUnknownEmail when no account uses email.
func (s *Service) CheckEmail(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email: %w", ErrEmptyField)
	}
	ok, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if !ok {
		return ErrUnknownEmail
	}
	return nil
}

// Login checks the credentials and returns the player's nickname.
// Wrong passwords return an *AttemptsError; once the limit is reached every
// further attempt fails with ErrTooManyAttempts until the password is reset.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.CheckEmail(ctx, email); err != nil {
		return "", err
	}
	email = NormalizeEmail(email)
	if password == "" {
		return "", fmt.Errorf("password: %w", ErrEmptyField)
	}

	s.mu.Lock()
	used := s.failures[email]
	s.mu.Unlock()
	if used >= s.maxAttempts {
		return "", &AttemptsError{Used: used, Remaining: 0, Err: ErrTooManyAttempts}
	}

	ok, err := s.store.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		s.mu.Lock()
		s.failures[email]++
		used = s.failures[email]
		s.mu.Unlock()

		remaining := s.maxAttempts - used
		s.log.Warn("login failed", "attempt", used, "remaining", remaining)
		if remaining <= 0 {
			return "", &AttemptsError{Used: used, Remaining: 0, Err: ErrTooManyAttempts}
		}
		return "", &AttemptsError{Used: used, Remaining: remaining, Err: ErrBadPassword}
	}

	s.clearFailures(email)
	nickname, err := s.store.Nickname(ctx, email)
	if err != nil {
		return "", fmt.Errorf("load nickname: %w", err)
	}
	s.log.Info("login", "nickname", nickname)
	return nickname, nil
}

// BeginReset validates the new password and mails a code to email.
func (s *Service) BeginReset(ctx context.Context, email, newPassword, confirm string) (*Challenge, error) {
	if err := s.CheckEmail(ctx, email); err != nil {
		return nil, err
	}
	if err := ValidatePasswordPair(newPassword, confirm); err != nil {
		return nil, err
	}
	ch := &Challenge{
		Purpose:     PurposeReset,
		Email:       NormalizeEmail(email),
		newPassword: newPassword,
	}
	if err := s.issue(ctx, ch); err != nil {
		return nil, err
	}
	s.log.Info("password reset started")
	return ch, nil
}

// CompleteReset checks the code, stores the new password and clears the
// failed login counter.
func (s *Service) CompleteReset(ctx context.Context, ch *Challenge, code string) error {
	if ch == nil || ch.Purpose != PurposeReset {
		return fmt.Errorf("complete reset: wrong challenge")
	}
	if err := ch.Verify(code, s.now()); err != nil {
		return err
	}
	if err := s.store.ResetPassword(ctx, ch.Email, ch.newPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	s.clearFailures(ch.Email)
	s.log.Info("password reset")
	return nil
}

func (s *Service) clearFailures(email string) {
	s.mu.Lock()
	delete(s.failures, email)
	s.mu.Unlock()
}
