// Package store holds the repository objects owning the two record
// collections and the business profile. Each store loads its snapshot from
// the blob boundary at construction, keeps the collection sorted after every
// mutation, and flushes the whole collection back on every change so readers
// always see ordered data.
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

// TransactionStore owns the financial transaction collection. Transactions
// are append-only; the collection is kept sorted by date descending with a
// stable sort, so same-date entries keep their insertion order.
type TransactionStore struct {
	mu     sync.Mutex
	blobs  blob.Store
	logger *zap.Logger
	newID  func() string
	items  []models.Transaction
}

// NewTransactionStore loads the persisted snapshot and restores the sort
// invariant. A missing or corrupt blob starts an empty collection.
func NewTransactionStore(ctx context.Context, blobs blob.Store, logger *zap.Logger) *TransactionStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &TransactionStore{
		blobs:  blobs,
		logger: logger,
		newID:  uuid.NewString,
	}

	var items []models.Transaction
	found, err := blobs.Load(ctx, blob.KeyTransactions, &items)
	if err != nil {
		logger.Warn("failed loading transactions, starting empty", zap.Error(err))
	}
	if found {
		sortTransactions(items)
		s.items = items
	}

	return s
}

// Add assigns a fresh id, appends the transaction and re-sorts the
// collection before persisting. The stored transaction is returned.
func (s *TransactionStore) Add(ctx context.Context, t models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.newID()
	s.items = append(s.items, t)
	sortTransactions(s.items)
	s.persist(ctx)
	return t
}

// All returns a copy of the collection in date-descending order.
func (s *TransactionStore) All() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

func (s *TransactionStore) persist(ctx context.Context) {
	if err := s.blobs.Save(ctx, blob.KeyTransactions, s.items); err != nil {
		// The in-memory collection stays authoritative for this run.
		s.logger.Error("failed persisting transactions", zap.Error(err))
	}
}

func sortTransactions(items []models.Transaction) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}
