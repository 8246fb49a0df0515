package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// identityNamespace seeds deterministic identity ids so the same email
// always maps to the same mock account.
var identityNamespace = uuid.MustParse("8f3c9a51-40a4-4f44-9c2e-1d2b6a7e5c10")

// Identity is the record representing a logged-in user. The auth boundary is
// mocked: identities are derived from the email, never verified.
type Identity struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityRef is a denormalized authorship snapshot stamped onto memes and
// comments at creation time. Later identity edits do not rewrite history.
type IdentityRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// DeriveIdentity builds the mock identity for an email: id is a stable
// UUIDv5 of the email, username is the local part, avatar is a dicebear URL
// seeded by the email.
func DeriveIdentity(email string, now time.Time) *Identity {
	username := email
	if i := strings.Index(email, "@"); i >= 0 {
		username = email[:i]
	}
	return &Identity{
		ID:        uuid.NewSHA1(identityNamespace, []byte(strings.ToLower(email))).String(),
		Username:  username,
		Email:     email,
		Avatar:    AvatarURL(email),
		CreatedAt: now,
	}
}

// AvatarURL returns a deterministic avatar for a seed string.
func AvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// Ref returns the authorship snapshot for this identity.
func (u *Identity) Ref() IdentityRef {
	return IdentityRef{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
