package service

import (
	"context"
	"testing"
	"time"

	"icebreak/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryService_Lifecycle(t *testing.T) {
	svc := NewLibraryService(newLibraryCache(t))
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()

	first, err := svc.Add(ctx, "c1", &model.AddLibraryRequest{
		Interests:   []string{"徒步"},
		Opener:      "你走过最难忘的线路是哪条？",
		Category:    "徒步",
		Emoji:       "⛰️",
		SuccessRate: 85,
	})
	require.NoError(t, err)
	assert.Equal(t, model.LibraryPending, first.Status)
	assert.NotEmpty(t, first.ID)

	second, err := svc.Add(ctx, "c1", &model.AddLibraryRequest{Opener: "你平时用什么相机？"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "c1", first.ID, &model.UpdateLibraryRequest{Status: model.LibrarySuccess, Notes: "聊了一晚上"})
	require.NoError(t, err)
	assert.Equal(t, model.LibrarySuccess, updated.Status)
	assert.Equal(t, "聊了一晚上", updated.Notes)

	updated, err = svc.Update(ctx, "c1", first.ID, &model.UpdateLibraryRequest{Status: model.LibraryInProgress})
	require.NoError(t, err)
	assert.Equal(t, "聊了一晚上", updated.Notes)

	records, err := svc.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)

	stats, err := svc.Stats(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.LibraryStats{Total: 2, InProgress: 1, Pending: 1}, *stats)

	require.NoError(t, svc.Delete(ctx, "c1", second.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, "c1", second.ID), ErrNotFound))
}

func TestLibraryService_UpdateMissing(t *testing.T) {
	svc := NewLibraryService(newLibraryCache(t))

	_, err := svc.Update(context.Background(), "c1", "nope", &model.UpdateLibraryRequest{Status: model.LibraryFailed})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Update(context.Background(), "c1", "nope", &model.UpdateLibraryRequest{Status: "bogus"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
