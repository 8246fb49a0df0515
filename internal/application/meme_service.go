package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	repo "github.com/imagegenhub/imagegenhub/internal/domain/repository"
)

const (
	CommentMaxLen   = 140
	FlagReasonMin   = 5
	FlagReasonMax   = 200
	featuredListLen = 3
)

var (
	ErrCommentEmpty     = errors.New("comment cannot be empty")
	ErrCommentTooLong   = fmt.Errorf("comments are limited to %d characters", CommentMaxLen)
	ErrFlagReasonLength = fmt.Errorf("flag reason must be between %d and %d characters", FlagReasonMin, FlagReasonMax)
	ErrImageURLRequired = errors.New("image url is required")
	ErrInvalidVote      = errors.New("unknown vote direction")
)

// CreateMemeInput is the caller-supplied part of a new meme; authorship and
// counters are stamped by the service.
type CreateMemeInput struct {
	ImageURL   string
	TopText    string
	BottomText string
	Tags       []string
}

// MemeService owns the meme collection and its derived views. It reads the
// current identity from AuthService to stamp authorship and to gate the
// mutating operations; that is its only dependency on auth.
type MemeService struct {
	Memes    repo.MemeRepository
	Auth     *AuthService
	Notifier *Notifier
	Logger   *logrus.Logger

	// Latency simulates the network round-trip on create. Tests inject zero.
	Latency time.Duration
}

func NewMemeService(memes repo.MemeRepository, auth *AuthService, notifier *Notifier, logger *logrus.Logger, latency time.Duration) *MemeService {
	return &MemeService{Memes: memes, Auth: auth, Notifier: notifier, Logger: logger, Latency: latency}
}

// CreateMeme validates, simulates the upload round-trip, then prepends the
// new meme so the collection stays newest-first.
func (s *MemeService) CreateMeme(ctx context.Context, in CreateMemeInput) (*entity.Meme, error) {
	user := s.Auth.CurrentUser()
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, ErrImageURLRequired
	}

	sleep(ctx, s.Latency)

	now := time.Now()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	m := &entity.Meme{
		ID:         newMemeID(now),
		ImageURL:   in.ImageURL,
		TopText:    in.TopText,
		BottomText: in.BottomText,
		Creator:    user.Ref(),
		CreatedAt:  now,
		Comments:   []entity.Comment{},
		Tags:       tags,
	}
	s.Memes.Prepend(m)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"meme_id": m.ID, "creator": user.Username}).Info("meme created")
	}
	s.Notifier.Publish(Event{Topic: TopicMemes, Action: "create", MemeID: m.ID})
	return m.Clone(), nil
}

// newMemeID is a millisecond timestamp with a uuid suffix so two creations
// in the same millisecond cannot collide.
func newMemeID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Vote applies the session-local vote toggle on one meme:
//
//	same direction again  -> remove the vote
//	opposite direction    -> move the vote across
//	no current vote       -> add the vote
//
// At most one direction is ever active and counters never go negative.
// The toggle runs inside the store's atomic Update so concurrent votes on
// the same meme serialize. An unknown meme id is a NotFound signal, not a
// crash.
func (s *MemeService) Vote(ctx context.Context, memeID string, direction entity.VoteDirection) error {
	if !s.Auth.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !direction.Valid() {
		return ErrInvalidVote
	}

	ok := s.Memes.Update(memeID, func(m *entity.Meme) {
		switch {
		case m.UserVote == direction:
			if direction == entity.VoteUp {
				m.Upvotes--
			} else {
				m.Downvotes--
			}
			m.UserVote = ""
		case m.UserVote.Valid():
			if direction == entity.VoteUp {
				m.Upvotes++
				m.Downvotes--
			} else {
				m.Downvotes++
				m.Upvotes--
			}
			m.UserVote = direction
		default:
			if direction == entity.VoteUp {
				m.Upvotes++
			} else {
				m.Downvotes++
			}
			m.UserVote = direction
		}
		if m.Upvotes < 0 {
			m.Upvotes = 0
		}
		if m.Downvotes < 0 {
			m.Downvotes = 0
		}
	})
	if !ok {
		return ErrNotFound
	}
	s.Notifier.Publish(Event{Topic: TopicMemes, Action: "vote", MemeID: memeID})
	return nil
}

// AddComment appends a comment stamped with the current identity. Text must
// be 1..140 characters after trimming; empty and over-length fail with
// distinct messages.
func (s *MemeService) AddComment(ctx context.Context, memeID, text string) error {
	user := s.Auth.CurrentUser()
	if user == nil {
		return ErrUnauthenticated
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrCommentEmpty
	}
	if len([]rune(trimmed)) > CommentMaxLen {
		return ErrCommentTooLong
	}

	comment := entity.Comment{
		ID:        uuid.NewString(),
		Text:      trimmed,
		User:      user.Ref(),
		CreatedAt: time.Now(),
	}
	ok := s.Memes.Update(memeID, func(m *entity.Meme) {
		m.Comments = append(m.Comments, comment)
	})
	if !ok {
		return ErrNotFound
	}
	s.Notifier.Publish(Event{Topic: TopicMemes, Action: "comment", MemeID: memeID})
	return nil
}

// FlagMeme acknowledges a moderation flag. There is no moderation queue in
// scope; the flag is logged and dropped, which is where a real system would
// enqueue to a moderation service.
func (s *MemeService) FlagMeme(ctx context.Context, memeID, reason string) error {
	user := s.Auth.CurrentUser()
	if user == nil {
		return ErrUnauthenticated
	}
	trimmed := strings.TrimSpace(reason)
	if n := len([]rune(trimmed)); n < FlagReasonMin || n > FlagReasonMax {
		return ErrFlagReasonLength
	}
	if _, ok := s.Memes.Get(memeID); !ok {
		return ErrNotFound
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"meme_id":    memeID,
			"flagged_by": user.ID,
			"reason":     trimmed,
		}).Info("meme flagged for review")
	}
	s.Notifier.Publish(Event{Topic: TopicMemes, Action: "flag", MemeID: memeID})
	return nil
}

// ListByUser returns the memes created by userID, preserving store order.
func (s *MemeService) ListByUser(userID string) []*entity.Meme {
	all := s.Memes.List()
	out := make([]*entity.Meme, 0, len(all))
	for _, m := range all {
		if m.Creator.ID == userID {
			out = append(out, m)
		}
	}
	return out
}

func (s *MemeService) GetByID(id string) (*entity.Meme, error) {
	m, ok := s.Memes.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

// ListRanked returns the collection under the given ranking mode. The "top"
// modes sort by net score; ties fall back to newest-first so the order is
// deterministic. Windowed modes drop memes older than the window.
func (s *MemeService) ListRanked(mode entity.RankingMode) []*entity.Meme {
	all := s.Memes.List()

	if window := mode.Window(); window > 0 {
		cutoff := time.Now().Add(-window)
		kept := all[:0]
		for _, m := range all {
			if !m.CreatedAt.Before(cutoff) {
				kept = append(kept, m)
			}
		}
		all = kept
	}

	switch mode {
	case entity.RankNew:
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
	default:
		sort.SliceStable(all, func(i, j int) bool {
			if all[i].Score() != all[j].Score() {
				return all[i].Score() > all[j].Score()
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
	}
	return all
}

// MemeOfTheDay is the meme flagged featured; with several flagged, the first
// in store order wins. Nil when none is flagged.
func (s *MemeService) MemeOfTheDay() *entity.Meme {
	for _, m := range s.Memes.List() {
		if m.IsFeatured {
			return m
		}
	}
	return nil
}

// FeaturedMemes is the top three by net score, independent of the featured
// flag and of the active ranking mode.
func (s *MemeService) FeaturedMemes() []*entity.Meme {
	top := s.ListRanked(entity.RankTopAll)
	if len(top) > featuredListLen {
		top = top[:featuredListLen]
	}
	return top
}
