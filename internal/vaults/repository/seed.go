package repository

import (
	"time"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

const seedImageURL = "https://images.unsplash.com/photo-1519681393784-d120267933ba?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1170&q=80"

// seedVaults returns the demo vaults written to an empty store on first use:
// one still locked a year out, one that unlocked ten days ago.
func seedVaults(now time.Time) []domain.TimeVault {
	return []domain.TimeVault{
		{
			ID:          "vault-1",
			Title:       "Our Trip to the Mountains",
			Description: "Remember the crisp air and the beautiful sunrise? We promised to come back here in five years. I wonder what we'll be like then. Hope we're still just as adventurous!",
			UnlockAt:    now.Add(365 * 24 * time.Hour),
			Media: []domain.MediaItem{
				{ID: "media-1", Kind: domain.MediaKindImage, URL: seedImageURL},
			},
		},
		{
			ID:          "vault-2",
			Title:       "First Day at the New Job",
			Description: "Felt so nervous but also excited for this new chapter. This is a reminder of the beginning. Hope you've grown and learned a lot since this day.",
			UnlockAt:    now.Add(-10 * 24 * time.Hour),
			Media:       []domain.MediaItem{},
		},
	}
}
