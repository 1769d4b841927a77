package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/store"
)

// storedVault is the wire form of a vault record. The unlock instant is kept
// as an RFC 3339 string and the derived lock state is never persisted.
type storedVault struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	UnlockDate  string             `json:"unlock_date"`
	Media       []domain.MediaItem `json:"media"`
}

func encodeRecord(v domain.TimeVault) (store.Record, error) {
	sv := storedVault{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		UnlockDate:  v.UnlockAt.UTC().Format(time.RFC3339Nano),
		Media:       v.Media,
	}
	b, err := json.Marshal(sv)
	if err != nil {
		return nil, fmt.Errorf("marshal vault record: %w", err)
	}
	return store.Record(b), nil
}

// decodeRecord parses a stored record back into the domain form with the lock
// state left unset; List derives it against a single clock reading.
func decodeRecord(rec store.Record) (domain.TimeVault, error) {
	var sv storedVault
	if err := json.Unmarshal(rec, &sv); err != nil {
		return domain.TimeVault{}, fmt.Errorf("unmarshal vault record: %w", err)
	}

	unlock, err := time.Parse(time.RFC3339Nano, sv.UnlockDate)
	if err != nil {
		return domain.TimeVault{}, fmt.Errorf("parse unlock_date %q: %w", sv.UnlockDate, err)
	}

	media := sv.Media
	if media == nil {
		media = []domain.MediaItem{}
	}

	return domain.TimeVault{
		ID:          sv.ID,
		Title:       sv.Title,
		Description: sv.Description,
		UnlockAt:    unlock,
		Media:       media,
	}, nil
}
