package memory

import (
	"encoding/json"
	"os"
	"time"

	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// SeedMemes returns the demo collection the app ships with, oldest last so
// that prepending in order leaves the newest meme at the head.
func SeedMemes() []*entity.Meme {
	return []*entity.Meme{
		{
			ID:         "1",
			ImageURL:   "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b",
			TopText:    "When the code works",
			BottomText: "But you don't know why",
			Creator:    entity.IdentityRef{ID: "user1", Username: "javascriptNinja", Avatar: entity.AvatarURL("javascript")},
			CreatedAt:  day("2023-05-15"),
			Upvotes:    350,
			Downvotes:  12,
			Comments:   []entity.Comment{},
			Tags:       []string{"javascript", "debugging"},
			IsFeatured: true,
		},
		{
			ID:         "2",
			ImageURL:   "https://images.unsplash.com/photo-1461749280684-dccba630e2f6",
			TopText:    "My code in production",
			BottomText: "My code in development",
			Creator:    entity.IdentityRef{ID: "user2", Username: "reactRockstar", Avatar: entity.AvatarURL("react")},
			CreatedAt:  day("2023-05-16"),
			Upvotes:    280,
			Downvotes:  15,
			Comments: []entity.Comment{
				{
					ID:        "comment1",
					Text:      "This is so true!",
					User:      entity.IdentityRef{ID: "user3", Username: "pythonLover", Avatar: entity.AvatarURL("python")},
					CreatedAt: time.Date(2023, 5, 16, 10, 30, 0, 0, time.UTC),
				},
			},
			Tags: []string{"production", "bugs"},
		},
		{
			ID:         "3",
			ImageURL:   "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d",
			TopText:    "CSS is easy",
			BottomText: "Said no developer ever",
			Creator:    entity.IdentityRef{ID: "user3", Username: "pythonLover", Avatar: entity.AvatarURL("python")},
			CreatedAt:  day("2023-05-17"),
			Upvotes:    420,
			Downvotes:  8,
			Comments:   []entity.Comment{},
			Tags:       []string{"css", "frontend"},
		},
		{
			ID:         "4",
			ImageURL:   "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158",
			TopText:    "Debugging like",
			BottomText: "Finding a needle in a haystack",
			Creator:    entity.IdentityRef{ID: "user4", Username: "cssWizard", Avatar: entity.AvatarURL("css")},
			CreatedAt:  day("2023-05-18"),
			Upvotes:    180,
			Downvotes:  5,
			Comments:   []entity.Comment{},
			Tags:       []string{"debugging", "bugs"},
		},
		{
			ID:         "5",
			ImageURL:   "https://images.unsplash.com/photo-1498050108023-c5249f4df085",
			TopText:    "When someone asks",
			BottomText: "If I tested my code",
			Creator:    entity.IdentityRef{ID: "user5", Username: "nodeMaster", Avatar: entity.AvatarURL("node")},
			CreatedAt:  day("2023-05-19"),
			Upvotes:    300,
			Downvotes:  10,
			Comments:   []entity.Comment{},
			Tags:       []string{"testing", "memes"},
		},
	}
}

// LoadSeed fills the repository from a JSON fixture file when path is set,
// falling back to the built-in demo collection. Memes in the fixture are
// expected oldest-first, matching SeedMemes.
func LoadSeed(repo repository.MemeRepository, path string) error {
	memes := SeedMemes()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var fromFile []*entity.Meme
		if err := json.Unmarshal(b, &fromFile); err != nil {
			return err
		}
		memes = fromFile
	}
	for _, m := range memes {
		repo.Prepend(m)
	}
	return nil
}
