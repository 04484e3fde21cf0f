// Package sqlite stores player accounts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/storage/sqlite/migrations"
	"github.com/tatianab/napele/internal/storage/sqlitemigrate"
	"golang.org/x/crypto/bcrypt"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store implements auth.UserStore over SQLite. Passwords are kept as bcrypt hashes.
type Store struct {
	sqlDB *sql.DB
	cost  int
}

var _ auth.UserStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithBcryptCost overrides the bcrypt cost used when hashing passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// Open opens the database at path and applies the bundled migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Writers queue on one connection instead of racing for the file lock.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{sqlDB: sqlDB, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT 1 FROM users WHERE email = ?", auth.NormalizeEmail(email))
}

func (s *Store) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	return s.exists(ctx, "SELECT 1 FROM users WHERE nickname = ?", strings.TrimSpace(nickname))
}

func (s *Store) exists(ctx context.Context, query string, arg string) (bool, error) {
	var found int
	err := s.sqlDB.QueryRowContext(ctx, query, arg).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateAccount stores a new account. It returns auth.ErrDuplicate when the
// nickname or email is already in use.
func (s *Store) CreateAccount(ctx context.Context, a auth.Account) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (name, nickname, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, strings.TrimSpace(a.Nickname), auth.NormalizeEmail(a.Email), string(hash), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// VerifyCredentials reports whether password matches the stored hash for email.
// Unknown emails report false.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	var hash string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT password_hash FROM users WHERE email = ?", auth.NormalizeEmail(email),
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}

func (s *Store) ResetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?",
		string(hash), time.Now().UTC().UnixMilli(), auth.NormalizeEmail(email),
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (s *Store) Nickname(ctx context.Context, email string) (string, error) {
	var nickname string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT nickname FROM users WHERE email = ?", auth.NormalizeEmail(email),
	).Scan(&nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return "", auth.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return nickname, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
