package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	repo "github.com/imagegenhub/imagegenhub/internal/domain/repository"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

var (
	ErrUnauthenticated = errors.New("must be logged in")
	ErrNotFound        = errors.New("not found")
)

// registeredUser is what the mock Register call records. Login never checks
// the hash (the auth boundary always succeeds) but a registered email keeps
// its chosen username instead of the derived one.
type registeredUser struct {
	Username     string
	PasswordHash string
}

// AuthService owns the current session's identity. It is the mock stand-in
// for a real auth backend: Login always succeeds and derives the identity
// from the email. The snapshot is mirrored to the session repository so a
// restart can restore the session.
type AuthService struct {
	mu         sync.RWMutex
	current    *entity.Identity
	registered map[string]registeredUser

	Sessions repo.SessionRepository
	Notifier *Notifier
	Logger   *logrus.Logger

	// Latency simulates the network round-trip of the mocked remote calls.
	// Tests inject zero.
	Latency time.Duration
}

func NewAuthService(sessions repo.SessionRepository, notifier *Notifier, logger *logrus.Logger, latency time.Duration) *AuthService {
	return &AuthService{
		registered: make(map[string]registeredUser),
		Sessions:   sessions,
		Notifier:   notifier,
		Logger:     logger,
		Latency:    latency,
	}
}

// simulateRoundTrip blocks for the configured mock latency. The sleep sits
// outside any lock so other operations interleave freely, matching the
// original's suspension-point behavior. Shutdown cancels the wait.
func (s *AuthService) simulateRoundTrip(ctx context.Context) {
	sleep(ctx, s.Latency)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Login establishes a session for the given email. Credentials are accepted
// unchecked; this is the mock boundary a real HTTP client would replace.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	s.simulateRoundTrip(ctx)

	u := entity.DeriveIdentity(email, time.Now())
	s.mu.Lock()
	if reg, ok := s.registered[strings.ToLower(email)]; ok {
		u.Username = reg.Username
	}
	s.current = u
	s.mu.Unlock()

	if err := s.Sessions.Save(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("session snapshot write failed")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("login")
	}
	s.Notifier.Publish(Event{Topic: TopicAuth, Action: "login"})
	return u, nil
}

// Register records the would-be account but does not establish a session;
// callers must Login afterwards.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	s.simulateRoundTrip(ctx)

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.registered[strings.ToLower(email)] = registeredUser{Username: username, PasswordHash: hash}
	s.mu.Unlock()

	if s.Logger != nil {
		s.Logger.WithField("email", email).Info("registered")
	}
	return nil
}

// Logout clears the session and erases the persisted snapshot. Idempotent.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	wasLoggedIn := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if err := s.Sessions.Clear(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("session snapshot erase failed")
	}
	if wasLoggedIn {
		s.Notifier.Publish(Event{Topic: TopicAuth, Action: "logout"})
	}
}

// RestoreSession installs a persisted snapshot if one exists. Called once at
// startup; a missing or corrupt snapshot means no session, never an error
// that blocks boot.
func (s *AuthService) RestoreSession(ctx context.Context) {
	u, err := s.Sessions.Load(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("session restore failed")
		}
		return
	}
	if u == nil {
		return
	}
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("session restored")
	}
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// CurrentUser returns a copy of the session identity, or nil.
func (s *AuthService) CurrentUser() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}
