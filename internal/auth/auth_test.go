package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/assets"
	"github.com/robalobadob/wordle/apps/wordle/internal/auth"
	"github.com/robalobadob/wordle/apps/wordle/internal/db"
)

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		name               string
		user, pass, verify string
		want               error
	}{
		{"missing username", "  ", "password1", "password1", auth.ErrUsernameRequired},
		{"missing password", "alice", "", "", auth.ErrPasswordRequired},
		{"missing verify", "alice", "password1", " ", auth.ErrVerifyRequired},
		{"mismatch", "alice", "password1", "password2", auth.ErrPasswordMismatch},
		{"short username", "al", "password1", "password1", auth.ErrUsernameLength},
		{"bad chars", "al ice", "password1", "password1", auth.ErrUsernameChars},
		{"short password", "alice", "pw", "pw", auth.ErrPasswordLength},
		{"password over bcrypt limit", "alice", strings.Repeat("p", 73), strings.Repeat("p", 73), auth.ErrPasswordLength},
		{"password at bcrypt limit", "alice", strings.Repeat("p", 72), strings.Repeat("p", 72), nil},
		{"ok", " alice_1 ", "password1", "password1", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.ValidateSignup(tc.user, tc.pass, tc.verify)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func newUsers(t *testing.T) *auth.Users {
	t.Helper()
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(conn, assets.Migrations()))
	return auth.NewUsers(conn)
}

func TestUsers_CreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	u, err := users.Create(ctx, "Alice", "password1", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password1", u.PasswordHash)

	_, err = users.Create(ctx, "alice", "password2", "password2")
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	got, err := users.Authenticate(ctx, "ALICE", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, 0, got.Stats.Played)

	_, err = users.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "bob", "password1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "alice", "")
	assert.ErrorIs(t, err, auth.ErrPasswordRequired)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Username)
	assert.Equal(t, u.CreatedAt, byID.CreatedAt)
}

func TestUsers_LongPassword(t *testing.T) {
	users := newUsers(t)
	pw := strings.Repeat("p", 72)
	_, err := users.Create(context.Background(), "carol", pw, pw)
	require.NoError(t, err)
	_, err = users.Authenticate(context.Background(), "carol", pw)
	assert.NoError(t, err)

	long := strings.Repeat("p", 80)
	_, err = users.Create(context.Background(), "dave", long, long)
	assert.ErrorIs(t, err, auth.ErrPasswordLength)
}

func TestUsers_ConcurrentSignupSameName(t *testing.T) {
	users := newUsers(t)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = users.Create(context.Background(), "bob_1", "password1", "password1")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	}
	assert.Equal(t, 1, created)
}

func TestTokens(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	tok, exp, err := tokens.Sign(auth.Claims{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{ID: "u1", Username: "alice"}, c)

	_, err = auth.NewTokens("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, _, err := auth.NewTokens("secret", -time.Minute).Sign(auth.Claims{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	_, err = tokens.Parse(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
