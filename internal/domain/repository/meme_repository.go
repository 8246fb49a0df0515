package repository

import "github.com/imagegenhub/imagegenhub/internal/domain/entity"

// MemeRepository is an ordered collection of memes with O(1) lookup by id.
// Storage order is newest-first: Prepend puts a meme at the head. Reads
// return clones so concurrent readers never see a partial update; Update
// runs a read-modify-write as one atomic step under the store's write lock.
type MemeRepository interface {
	Prepend(m *entity.Meme)
	Get(id string) (*entity.Meme, bool)
	Update(id string, fn func(m *entity.Meme)) bool
	Replace(m *entity.Meme) bool
	List() []*entity.Meme
	Len() int
}
