package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

// SnapshotKey is the fixed key the session snapshot lives under.
const SnapshotKey = "imagegenhub:session:current"

// RedisStore keeps the session snapshot in Redis with a TTL, for deployments
// where the server process is restarted or load balanced.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl, logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, u *entity.Identity) error {
	return helpers.RedisSetJSON(ctx, s.rdb, SnapshotKey, u, s.ttl)
}

func (s *RedisStore) Load(ctx context.Context) (*entity.Identity, error) {
	var u entity.Identity
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, SnapshotKey, &u)
	if err != nil || !ok {
		// Redis being down or the record being unreadable both mean "no
		// session"; startup must not fail on it.
		if err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("session snapshot unavailable")
		}
		return nil, nil
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return helpers.RedisDel(ctx, s.rdb, SnapshotKey)
}

var _ repository.SessionRepository = (*RedisStore)(nil)
