package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/napele/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "usuarios.db"), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var ana = auth.Account{Name: "Ana Souza", Nickname: "ana", Email: "ana@gmail.com", Password: "246810"}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ok, err := s.EmailExists(ctx, ana.Email)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.CreateAccount(ctx, ana))

	ok, err = s.EmailExists(ctx, "ANA@gmail.com ")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.NicknameExists(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.NicknameExists(ctx, "Ana")
	require.NoError(t, err)
	assert.False(t, ok, "nicknames are case sensitive")

	nick, err := s.Nickname(ctx, ana.Email)
	require.NoError(t, err)
	assert.Equal(t, "ana", nick)

	_, err = s.Nickname(ctx, "bob@gmail.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestPasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.CreateAccount(ctx, ana))

	var stored string
	require.NoError(t, s.sqlDB.QueryRow("SELECT password_hash FROM users WHERE email = ?", ana.Email).Scan(&stored))
	assert.NotEqual(t, ana.Password, stored)

	ok, err := s.VerifyCredentials(ctx, ana.Email, ana.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyCredentials(ctx, ana.Email, "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.VerifyCredentials(ctx, "bob@gmail.com", ana.Password)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.CreateAccount(ctx, ana))

	sameNick := ana
	sameNick.Email = "outra@gmail.com"
	assert.ErrorIs(t, s.CreateAccount(ctx, sameNick), auth.ErrDuplicate)

	sameEmail := ana
	sameEmail.Nickname = "ana2"
	sameEmail.Email = "Ana@Gmail.com"
	assert.ErrorIs(t, s.CreateAccount(ctx, sameEmail), auth.ErrDuplicate)
}

func TestConcurrentCreateOneWins(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const n = 5
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.CreateAccount(ctx, ana)
		}()
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrDuplicate)
	}
	assert.Equal(t, 1, created)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.CreateAccount(ctx, ana))

	require.NoError(t, s.ResetPassword(ctx, ana.Email, "135790"))
	ok, err := s.VerifyCredentials(ctx, ana.Email, "135790")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.VerifyCredentials(ctx, ana.Email, ana.Password)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.ResetPassword(ctx, "bob@gmail.com", "135790"), auth.ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "usuarios.db")

	s, err := Open(path, WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	require.NoError(t, s.CreateAccount(ctx, ana))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	ok, err := s.VerifyCredentials(ctx, ana.Email, ana.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
