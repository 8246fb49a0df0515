package repository

import (
	"context"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
)

// SessionRepository persists the current session's identity snapshot under a
// single fixed key, mirroring the browser localStorage record the mock auth
// flow depends on. Load returns (nil, nil) when no snapshot exists or the
// stored record cannot be parsed; a corrupt snapshot must degrade to "no
// session", never fail startup.
type SessionRepository interface {
	Save(ctx context.Context, u *entity.Identity) error
	Load(ctx context.Context) (*entity.Identity, error)
	Clear(ctx context.Context) error
}
