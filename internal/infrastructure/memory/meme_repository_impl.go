package memory

import (
	"sync"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
)

// MemeRepository keeps the collection in process memory: a newest-first
// slice for ordered listing plus an id index for O(1) lookup. All access is
// serialized behind an RWMutex; Get and List hand out clones so callers can
// read without holding the lock.
type MemeRepository struct {
	mu    sync.RWMutex
	order []*entity.Meme
	byID  map[string]*entity.Meme
}

func NewMemeRepository() *MemeRepository {
	return &MemeRepository{byID: make(map[string]*entity.Meme)}
}

func (r *MemeRepository) Prepend(m *entity.Meme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := m.Clone()
	r.order = append([]*entity.Meme{cp}, r.order...)
	r.byID[cp.ID] = cp
}

func (r *MemeRepository) Get(id string) (*entity.Meme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Update applies fn to the stored meme while holding the write lock, so the
// whole read-modify-write is one atomic step and concurrent updates to the
// same meme serialize. Returns false when the id is unknown.
func (r *MemeRepository) Update(id string, fn func(m *entity.Meme)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return false
	}
	fn(m)
	return true
}

// Replace swaps the stored meme with the given snapshot, keeping its slot in
// the ordering. Returns false when the id is unknown.
func (r *MemeRepository) Replace(m *entity.Meme) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return false
	}
	cp := m.Clone()
	for i, cur := range r.order {
		if cur.ID == cp.ID {
			r.order[i] = cp
			break
		}
	}
	r.byID[cp.ID] = cp
	return true
}

func (r *MemeRepository) List() []*entity.Meme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Meme, len(r.order))
	for i, m := range r.order {
		out[i] = m.Clone()
	}
	return out
}

func (r *MemeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

var _ repository.MemeRepository = (*MemeRepository)(nil)
