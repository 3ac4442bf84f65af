package service

import (
	"context"
	"time"

	"icebreak/internal/cache"
	"icebreak/internal/model"

	"github.com/google/uuid"
)

// LibraryService manages saved openers and their outcomes
type LibraryService struct {
	cache cache.LibraryCache
	now   func() time.Time
}

// NewLibraryService creates a new library service
func NewLibraryService(c cache.LibraryCache) *LibraryService {
	return &LibraryService{
		cache: c,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Add saves an opener with status pending
func (s *LibraryService) Add(ctx context.Context, clientID string, req *model.AddLibraryRequest) (*model.LibraryRecord, error) {
	if err := ValidateAddLibraryRequest(req); err != nil {
		return nil, err
	}
	rec := &model.LibraryRecord{
		ID:          uuid.New().String(),
		Interests:   req.Interests,
		Opener:      req.Opener,
		Category:    req.Category,
		Emoji:       req.Emoji,
		SuccessRate: req.SuccessRate,
		CreatedAt:   s.now(),
		Status:      model.LibraryPending,
	}
	if err := s.cache.Put(ctx, clientID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *LibraryService) List(ctx context.Context, clientID string) ([]model.LibraryRecord, error) {
	return s.cache.List(ctx, clientID)
}

// Update sets the outcome status; notes are replaced only when given
func (s *LibraryService) Update(ctx context.Context, clientID, id string, req *model.UpdateLibraryRequest) (*model.LibraryRecord, error) {
	if err := ValidateUpdateLibraryRequest(req); err != nil {
		return nil, err
	}
	rec, err := s.cache.Get(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	rec.Status = req.Status
	if req.Notes != "" {
		rec.Notes = req.Notes
	}
	if err := s.cache.Put(ctx, clientID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *LibraryService) Delete(ctx context.Context, clientID, id string) error {
	ok, err := s.cache.Delete(ctx, clientID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Stats counts records per status
func (s *LibraryService) Stats(ctx context.Context, clientID string) (*model.LibraryStats, error) {
	records, err := s.cache.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	stats := &model.LibraryStats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case model.LibrarySuccess:
			stats.Success++
		case model.LibraryInProgress:
			stats.InProgress++
		case model.LibraryPending:
			stats.Pending++
		case model.LibraryFailed:
			stats.Failed++
		}
	}
	return stats, nil
}
