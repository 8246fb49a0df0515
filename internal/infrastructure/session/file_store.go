package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
)

// FileStore persists the session snapshot as a single JSON file, the server
// side analog of the browser localStorage record. Writes go through a temp
// file rename so a crash never leaves a half-written snapshot.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *logrus.Logger
}

func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Save(_ context.Context, u *entity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load(_ context.Context) (*entity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u entity.Identity
	if err := json.Unmarshal(b, &u); err != nil || u.ID == "" {
		// Unparseable snapshot degrades to "no session".
		if s.logger != nil {
			s.logger.WithField("path", s.path).Warn("discarding corrupt session snapshot")
		}
		return nil, nil
	}
	return &u, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

var _ repository.SessionRepository = (*FileStore)(nil)
