package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagegenhub/imagegenhub/internal/infrastructure/session"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

func newAuthService(t *testing.T) (*AuthService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path, nil)
	return NewAuthService(store, NewNotifier(), nil, 0), path
}

func TestLoginDerivesIdentityFromEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Login(ctx, "dev@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "dev", u.Username)
	assert.Equal(t, "dev@example.com", u.Email)
	assert.Contains(t, u.Avatar, "dev@example.com")
	assert.True(t, svc.IsAuthenticated())

	// Same email always maps to the same mock account.
	again, err := svc.Login(ctx, "dev@example.com", "different-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestLoginPersistsSnapshot(t *testing.T) {
	svc, path := newAuthService(t)
	_, err := svc.Login(context.Background(), "dev@example.com", "pw")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "dev@example.com")
}

func TestRegisterDoesNotEstablishSession(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(context.Background(), "cooluser", "cool@example.com", "password123"))
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.CurrentUser())
}

func TestRegisterStoresBcryptHash(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(context.Background(), "cooluser", "cool@example.com", "password123"))

	reg, ok := svc.registered["cool@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "password123", reg.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(reg.PasswordHash, "password123"))
	assert.False(t, helpers.CompareHashAndPassword(reg.PasswordHash, "wrong-password"))
}

func TestLoginUsesRegisteredUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "cooluser", "cool@example.com", "password123"))

	u, err := svc.Login(ctx, "cool@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "cooluser", u.Username)
}

func TestLogoutIsIdempotentAndErasesSnapshot(t *testing.T) {
	svc, path := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Login(ctx, "dev@example.com", "pw")
	require.NoError(t, err)

	svc.Logout(ctx)
	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreSessionAfterLogoutYieldsNoSession(t *testing.T) {
	svc, path := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Login(ctx, "dev@example.com", "pw")
	require.NoError(t, err)
	svc.Logout(ctx)

	// New process, same snapshot path: nothing to restore.
	fresh := NewAuthService(session.NewFileStore(path, nil), NewNotifier(), nil, 0)
	fresh.RestoreSession(ctx)
	assert.False(t, fresh.IsAuthenticated())
}

func TestRestoreSessionRoundTrip(t *testing.T) {
	svc, path := newAuthService(t)
	ctx := context.Background()
	u, err := svc.Login(ctx, "dev@example.com", "pw")
	require.NoError(t, err)

	fresh := NewAuthService(session.NewFileStore(path, nil), NewNotifier(), nil, 0)
	fresh.RestoreSession(ctx)
	require.True(t, fresh.IsAuthenticated())
	assert.Equal(t, u.ID, fresh.CurrentUser().ID)
}

func TestRestoreSessionSurvivesCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	svc := NewAuthService(session.NewFileStore(path, nil), NewNotifier(), nil, 0)
	svc.RestoreSession(context.Background())
	assert.False(t, svc.IsAuthenticated())
}

func TestAuthEventsPublished(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	notifier := NewNotifier()
	svc := NewAuthService(session.NewFileStore(path, nil), notifier, nil, 0)

	var events []Event
	unsub := notifier.Subscribe(func(ev Event) { events = append(events, ev) })
	defer unsub()

	ctx := context.Background()
	_, err := svc.Login(ctx, "dev@example.com", "pw")
	require.NoError(t, err)
	svc.Logout(ctx)
	svc.Logout(ctx) // no session, no event

	require.Len(t, events, 2)
	assert.Equal(t, Event{Topic: TopicAuth, Action: "login"}, events[0])
	assert.Equal(t, Event{Topic: TopicAuth, Action: "logout"}, events[1])
}
