package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle        = errors.New("vault title is required")
	ErrMissingUnlockDate = errors.New("unlock date is required")
	ErrVaultNotFound     = errors.New("vault not found")
	ErrStoreUnavailable  = errors.New("vault store unavailable")
)

// MaterializationError reports a failed durable conversion of one media item.
// Any single failure aborts the whole create; no partial vault is persisted.
type MaterializationError struct {
	MediaID string
	Err     error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("materialize media %s: %v", e.MediaID, e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }

// CorruptRecordError reports a stored record that failed to decode. The
// repository excludes the record from list results and logs it; the rest of
// the list still succeeds.
type CorruptRecordError struct {
	Index int
	Err   error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt vault record at index %d: %v", e.Index, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }
