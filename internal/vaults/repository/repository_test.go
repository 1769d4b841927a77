package repository

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhagesh4604/TimeVault1/internal/clock"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/store"
)

const testUser = "user-1"

var testBase = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// stubMaterializer stands in for the external media storage boundary.
type stubMaterializer struct {
	fail  bool
	calls int
}

func (s *stubMaterializer) Materialize(_ context.Context, up domain.MediaUpload) (string, error) {
	s.calls++
	if up.Body != nil {
		io.Copy(io.Discard, up.Body)
	}
	if s.fail {
		return "", errors.New("object storage rejected upload")
	}
	return "https://media.test/" + up.ID, nil
}

func setupRepo(t *testing.T) (*Repository, store.VaultStore, *clock.Fake, *stubMaterializer) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	st := store.NewRedisStore(client)
	clk := clock.NewFake(testBase)
	mat := &stubMaterializer{}

	return New(st, mat, clk), st, clk, mat
}

func TestList_SeedsEmptyStoreOnce(t *testing.T) {
	repo, st, _, _ := setupRepo(t)
	ctx := context.Background()

	vaults, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, vaults, 2)

	// Sorted ascending by unlock instant: the already-unlocked demo vault
	// comes first.
	assert.Equal(t, "First Day at the New Job", vaults[0].Title)
	assert.False(t, vaults[0].IsLocked)
	assert.Empty(t, vaults[0].Media)

	assert.Equal(t, "Our Trip to the Mountains", vaults[1].Title)
	assert.True(t, vaults[1].IsLocked)
	require.Len(t, vaults[1].Media, 1)
	assert.Equal(t, domain.MediaKindImage, vaults[1].Media[0].Kind)

	// Re-listing must not reseed.
	again, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, again, 2)

	recs, err := st.GetAll(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestCreate_LockStateFlipsWithClock(t *testing.T) {
	repo, _, clk, _ := setupRepo(t)
	ctx := context.Background()

	unlock := clk.Now().Add(1000 * time.Second)
	v, err := repo.Create(ctx, testUser, domain.VaultInput{
		Title:    "Trip",
		UnlockAt: unlock,
	})
	require.NoError(t, err)
	assert.True(t, v.IsLocked)

	vaults, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	trip := findByTitle(t, vaults, "Trip")
	assert.True(t, trip.IsLocked)

	clk.Advance(1001 * time.Second)

	vaults, err = repo.List(ctx, testUser)
	require.NoError(t, err)
	trip = findByTitle(t, vaults, "Trip")
	assert.False(t, trip.IsLocked)

	// Lock monotonicity: once unlocked, later reads stay unlocked.
	clk.Advance(365 * 24 * time.Hour)
	vaults, err = repo.List(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, findByTitle(t, vaults, "Trip").IsLocked)
}

func TestList_SingleClockReadingPerBatch(t *testing.T) {
	repo, _, clk, _ := setupRepo(t)
	ctx := context.Background()

	// Two vaults that straddle the current instant.
	_, err := repo.Create(ctx, testUser, domain.VaultInput{Title: "past", UnlockAt: clk.Now().Add(-time.Second)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, testUser, domain.VaultInput{Title: "future", UnlockAt: clk.Now().Add(time.Second)})
	require.NoError(t, err)

	vaults, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, findByTitle(t, vaults, "past").IsLocked)
	assert.True(t, findByTitle(t, vaults, "future").IsLocked)
}

func TestList_StableOrderForEqualInstants(t *testing.T) {
	repo, _, clk, _ := setupRepo(t)
	ctx := context.Background()

	unlock := clk.Now().Add(time.Hour)
	for _, title := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, testUser, domain.VaultInput{Title: title, UnlockAt: unlock})
		require.NoError(t, err)
	}

	first, err := repo.List(ctx, testUser)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := repo.List(ctx, testUser)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].ID, again[j].ID)
		}
	}

	// Non-decreasing by unlock instant.
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].UnlockAt.Before(first[i-1].UnlockAt))
	}
}

func TestCreate_RoundTripWithMedia(t *testing.T) {
	repo, _, clk, mat := setupRepo(t)
	ctx := context.Background()

	unlock := clk.Now().Add(48 * time.Hour)
	input := domain.VaultInput{
		Title:       "Letter to Future Me",
		Description: "open in two days",
		UnlockAt:    unlock,
		Media: []domain.MediaUpload{
			{ID: "m-1", FileName: "sunrise.jpg", ContentType: "image/jpeg", Size: 4, Body: strings.NewReader("data")},
			{ID: "m-2", URL: "https://example.com/already-durable.png"},
		},
	}

	created, err := repo.Create(ctx, testUser, input)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, mat.calls, "only pending uploads are materialized")

	vaults, err := repo.List(ctx, testUser)
	require.NoError(t, err)

	var matches []domain.TimeVault
	for _, v := range vaults {
		if v.Title == input.Title {
			matches = append(matches, v)
		}
	}
	require.Len(t, matches, 1)

	got := matches[0]
	assert.Equal(t, input.Description, got.Description)
	assert.True(t, got.UnlockAt.Equal(unlock))
	require.Len(t, got.Media, 2)

	// Result order matches input order and every URL is durable.
	assert.Equal(t, "m-1", got.Media[0].ID)
	assert.Equal(t, "https://media.test/m-1", got.Media[0].URL)
	assert.Equal(t, "m-2", got.Media[1].ID)
	assert.Equal(t, "https://example.com/already-durable.png", got.Media[1].URL)
}

func TestCreate_FailedMaterializationAppendsNothing(t *testing.T) {
	repo, st, clk, mat := setupRepo(t)
	ctx := context.Background()

	// Force the store out of its first-run state so counts are meaningful.
	_, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	before, err := st.GetAll(ctx, testUser)
	require.NoError(t, err)

	mat.fail = true
	_, err = repo.Create(ctx, testUser, domain.VaultInput{
		Title:    "doomed",
		UnlockAt: clk.Now().Add(time.Hour),
		Media: []domain.MediaUpload{
			{ID: "m-1", FileName: "a.jpg", Body: strings.NewReader("a")},
		},
	})

	var mErr *domain.MaterializationError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "m-1", mErr.MediaID)

	after, err := st.GetAll(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "record count must be unchanged")
}

// closeTracker records whether the create pipeline released the handle.
type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestCreate_ReleasesUploadHandles(t *testing.T) {
	repo, _, clk, mat := setupRepo(t)
	ctx := context.Background()

	t.Run("after a successful create", func(t *testing.T) {
		body := &closeTracker{Reader: strings.NewReader("jpeg-bytes")}
		_, err := repo.Create(ctx, testUser, domain.VaultInput{
			Title:    "kept",
			UnlockAt: clk.Now().Add(time.Hour),
			Media:    []domain.MediaUpload{{ID: "m-1", FileName: "a.jpg", Body: body}},
		})
		require.NoError(t, err)
		assert.True(t, body.closed)
	})

	t.Run("after a failed materialization", func(t *testing.T) {
		mat.fail = true
		t.Cleanup(func() { mat.fail = false })

		body := &closeTracker{Reader: strings.NewReader("jpeg-bytes")}
		_, err := repo.Create(ctx, testUser, domain.VaultInput{
			Title:    "doomed",
			UnlockAt: clk.Now().Add(time.Hour),
			Media:    []domain.MediaUpload{{ID: "m-1", FileName: "a.jpg", Body: body}},
		})
		require.Error(t, err)
		assert.True(t, body.closed)
	})

	t.Run("after a validation rejection", func(t *testing.T) {
		body := &closeTracker{Reader: strings.NewReader("jpeg-bytes")}
		_, err := repo.Create(ctx, testUser, domain.VaultInput{
			Title:    "   ",
			UnlockAt: clk.Now().Add(time.Hour),
			Media:    []domain.MediaUpload{{ID: "m-1", FileName: "a.jpg", Body: body}},
		})
		require.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.True(t, body.closed)
	})
}

func TestCreate_RejectsBlankTitle(t *testing.T) {
	repo, _, clk, _ := setupRepo(t)

	_, err := repo.Create(context.Background(), testUser, domain.VaultInput{
		Title:    "   ",
		UnlockAt: clk.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestList_SkipsCorruptRecords(t *testing.T) {
	repo, st, clk, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser, domain.VaultInput{Title: "good", UnlockAt: clk.Now().Add(time.Hour)})
	require.NoError(t, err)

	// A record with a malformed timestamp must not abort the whole list.
	require.NoError(t, st.Append(ctx, testUser, store.Record(`{"id":"bad","title":"bad","unlock_date":"not-a-time","media":[]}`)))
	require.NoError(t, st.Append(ctx, testUser, store.Record(`not even json`)))

	vaults, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, "good", vaults[0].Title)
}

func TestRecord_RoundTripKeepsISOTimestamp(t *testing.T) {
	v := domain.TimeVault{
		ID:       "v-1",
		Title:    "t",
		UnlockAt: testBase.Add(90065 * time.Second),
		Media:    []domain.MediaItem{},
	}

	rec, err := encodeRecord(v)
	require.NoError(t, err)
	assert.Contains(t, string(rec), `"unlock_date":"2024-06-02T13:01:05Z"`)
	assert.NotContains(t, string(rec), "is_locked", "lock state is derived, never persisted")

	back, err := decodeRecord(rec)
	require.NoError(t, err)
	assert.True(t, back.UnlockAt.Equal(v.UnlockAt))
}

func findByTitle(t *testing.T, vaults []domain.TimeVault, title string) domain.TimeVault {
	t.Helper()
	for _, v := range vaults {
		if v.Title == title {
			return v
		}
	}
	t.Fatalf("vault %q not found", title)
	return domain.TimeVault{}
}
