package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
)

// ProfileStore owns the singleton business profile. The profile is passed
// through catalog normalization on every load and save, so consumers always
// see exactly one packaging setting per catalog entry.
type ProfileStore struct {
	mu      sync.Mutex
	blobs   blob.Store
	logger  *zap.Logger
	profile models.BusinessProfile
}

// NewProfileStore loads the persisted profile, falling back to the
// zero-valued default on first run or when the blob is corrupt.
func NewProfileStore(ctx context.Context, blobs blob.Store, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ProfileStore{blobs: blobs, logger: logger}

	profile := models.NewBusinessProfile()
	found, err := blobs.Load(ctx, blob.KeyBusinessProfile, &profile)
	if err != nil {
		logger.Warn("failed loading business profile, using defaults", zap.Error(err))
	}
	if !found {
		profile = models.NewBusinessProfile()
	}
	s.profile = models.NormalizeProfile(profile)

	return s
}

// Get returns the current normalized profile.
func (s *ProfileStore) Get() models.BusinessProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Save replaces the profile wholesale after normalization and persists it.
// The normalized profile is returned.
func (s *ProfileStore) Save(ctx context.Context, profile models.BusinessProfile) models.BusinessProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = models.NormalizeProfile(profile)
	if err := s.blobs.Save(ctx, blob.KeyBusinessProfile, s.profile); err != nil {
		s.logger.Error("failed persisting business profile", zap.Error(err))
	}
	return s.profile
}
