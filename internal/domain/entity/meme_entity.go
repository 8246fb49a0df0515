package entity

import "time"

// VoteDirection is one of the two vote buttons.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Valid reports whether d is a known direction.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// RankingMode selects sort order and filter window for the meme listing.
type RankingMode string

const (
	RankNew     RankingMode = "new"
	RankTopDay  RankingMode = "top-day"
	RankTopWeek RankingMode = "top-week"
	RankTopAll  RankingMode = "top-all"
)

// Valid reports whether m is a known ranking mode.
func (m RankingMode) Valid() bool {
	switch m {
	case RankNew, RankTopDay, RankTopWeek, RankTopAll:
		return true
	}
	return false
}

// Window returns the filter window for time-bounded modes, or 0 when the
// mode does not filter by age.
func (m RankingMode) Window() time.Duration {
	switch m {
	case RankTopDay:
		return 24 * time.Hour
	case RankTopWeek:
		return 7 * 24 * time.Hour
	}
	return 0
}

// Comment is immutable once created; insertion order is display order.
type Comment struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	User      IdentityRef `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// Meme is the aggregate root for the meme domain. Vote counters never go
// negative; UserVote tracks the viewing session's vote, not a per-user
// record, so it resets when a new session starts.
type Meme struct {
	ID         string        `json:"id"`
	ImageURL   string        `json:"image_url"`
	TopText    string        `json:"top_text,omitempty"`
	BottomText string        `json:"bottom_text,omitempty"`
	Creator    IdentityRef   `json:"creator"`
	CreatedAt  time.Time     `json:"created_at"`
	Upvotes    int           `json:"upvotes"`
	Downvotes  int           `json:"downvotes"`
	UserVote   VoteDirection `json:"user_vote,omitempty"`
	Comments   []Comment     `json:"comments"`
	Tags       []string      `json:"tags"`
	IsFeatured bool          `json:"is_featured,omitempty"`
}

// Score is net votes, the ranking key for the "top" modes.
func (m *Meme) Score() int {
	return m.Upvotes - m.Downvotes
}

// Clone returns a deep copy so readers always observe a full snapshot and
// never alias the stored slices.
func (m *Meme) Clone() *Meme {
	cp := *m
	if m.Comments != nil {
		cp.Comments = make([]Comment, len(m.Comments))
		copy(cp.Comments, m.Comments)
	}
	if m.Tags != nil {
		cp.Tags = make([]string, len(m.Tags))
		copy(cp.Tags, m.Tags)
	}
	return &cp
}
