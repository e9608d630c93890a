package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(repos testRepos) *AuthService {
	return NewAuthService(repos.users, repos.sessions, time.Hour, bcrypt.MinCost)
}

func TestSignup(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	user, session, err := svc.Signup(ctx, "  alice  ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.Valid(time.Now()))

	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
}

func TestSignupValidation(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		password string
	}{
		{"empty name", "", "s3cret"},
		{"whitespace name", "   ", "s3cret"},
		{"name too long", strings.Repeat("a", 65), "s3cret"},
		{"password too short", "alice", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(ctx, tt.userName, tt.password)
			requireAppError(t, err, models.CodeValidation)
		})
	}
}

func TestSignupConflict(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "alice", "other")
	requireAppError(t, err, models.CodeConflict)

	// Whitespace does not dodge the uniqueness check.
	_, _, err = svc.Signup(ctx, " alice ", "other")
	requireAppError(t, err, models.CodeConflict)
}

func TestLogin(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)

	user, session, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.NotEmpty(t, session.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "alice", "nope")
	appErr1 := requireAppError(t, wrongPassword, models.CodeAuthentication)

	_, _, unknownUser := svc.Login(ctx, "mallory", "nope")
	appErr2 := requireAppError(t, unknownUser, models.CodeAuthentication)

	assert.Equal(t, appErr1.Message, appErr2.Message)
}

func TestCurrentUser(t *testing.T) {
	db, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	signedUp, session, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, signedUp.ID, user.ID)

	// Unknown token resolves to anonymous, not an error.
	user, err = svc.CurrentUser(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.CurrentUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, user)

	// Expired sessions resolve to anonymous too.
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
	user, err = svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogout(t *testing.T) {
	_, repos := setupRepos(t)
	svc := newAuthService(repos)
	ctx := context.Background()

	_, session, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	user, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Logging out again, or with no session at all, is a no-op.
	require.NoError(t, svc.Logout(ctx, session.Token))
	require.NoError(t, svc.Logout(ctx, ""))
}
