package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
)

// ProductionStore owns the egg production collection. After every mutation
// the collection is re-sorted by date descending, then by the catalog order
// of the collection time ascending; records tagged with an unknown day-part
// id sort last among records sharing a date.
type ProductionStore struct {
	mu     sync.Mutex
	blobs  blob.Store
	logger *zap.Logger
	newID  func() string
	items  []models.EggProductionRecord
}

// NewProductionStore loads the persisted snapshot and restores the sort
// invariant. A missing or corrupt blob starts an empty collection.
func NewProductionStore(ctx context.Context, blobs blob.Store, logger *zap.Logger) *ProductionStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ProductionStore{
		blobs:  blobs,
		logger: logger,
		newID:  uuid.NewString,
	}

	var items []models.EggProductionRecord
	found, err := blobs.Load(ctx, blob.KeyEggProduction, &items)
	if err != nil {
		logger.Warn("failed loading egg production records, starting empty", zap.Error(err))
	}
	if found {
		sortProductionRecords(items)
		s.items = items
	}

	return s
}

// Add assigns a fresh id, appends the record, re-sorts and persists. The
// stored record is returned.
func (s *ProductionStore) Add(ctx context.Context, rec models.EggProductionRecord) models.EggProductionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	s.items = append(s.items, rec)
	sortProductionRecords(s.items)
	s.persist(ctx)
	return rec
}

// Update replaces the record whose id matches rec.ID in place, then re-sorts
// and persists. It reports whether a record was found; when none matches the
// collection is unchanged.
func (s *ProductionStore) Update(ctx context.Context, rec models.EggProductionRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == rec.ID {
			s.items[i] = rec
			sortProductionRecords(s.items)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Delete removes the record matching id, then re-sorts and persists. It
// reports whether a record was removed; when none matches the collection is
// unchanged.
func (s *ProductionStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			sortProductionRecords(s.items)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in invariant order.
func (s *ProductionStore) All() []models.EggProductionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.EggProductionRecord, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ProductionStore) persist(ctx context.Context) {
	if err := s.blobs.Save(ctx, blob.KeyEggProduction, s.items); err != nil {
		s.logger.Error("failed persisting egg production records", zap.Error(err))
	}
}

func sortProductionRecords(items []models.EggProductionRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return models.CollectionTimeOrder(items[i].CollectionTimeOfDayID) <
			models.CollectionTimeOrder(items[j].CollectionTimeOfDayID)
	})
}
