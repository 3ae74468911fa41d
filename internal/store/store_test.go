package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
)

func newBlobStore(t *testing.T) (blob.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := blob.NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func TestTransactionStore_AddSortsByDateDescending(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewTransactionStore(context.Background(), blobs, nil)

	s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-05-01", Amount: decimal.NewFromInt(10)})
	s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-05-10", Amount: decimal.NewFromInt(20)})
	s.Add(context.Background(), models.Transaction{Type: models.TransactionExpense, Date: "2024-04-30", Amount: decimal.NewFromInt(5)})

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "2024-05-10", all[0].Date)
	assert.Equal(t, "2024-05-01", all[1].Date)
	assert.Equal(t, "2024-04-30", all[2].Date)
}

func TestTransactionStore_StableOrderForEqualDates(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewTransactionStore(context.Background(), blobs, nil)

	first := s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-05-01", Description: "primeira", Amount: decimal.NewFromInt(1)})
	second := s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-05-01", Description: "segunda", Amount: decimal.NewFromInt(2)})

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestTransactionStore_AssignsUniqueIDs(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewTransactionStore(context.Background(), blobs, nil)

	a := s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-01-01", Amount: decimal.NewFromInt(1)})
	b := s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-01-01", Amount: decimal.NewFromInt(1)})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTransactionStore_PersistsAcrossRestarts(t *testing.T) {
	blobs, _ := newBlobStore(t)

	s := NewTransactionStore(context.Background(), blobs, nil)
	added := s.Add(context.Background(), models.Transaction{Type: models.TransactionRevenue, Date: "2024-05-01", Amount: decimal.RequireFromString("120.50")})

	reloaded := NewTransactionStore(context.Background(), blobs, nil)
	all := reloaded.All()
	require.Len(t, all, 1)
	assert.Equal(t, added.ID, all[0].ID)
	assert.True(t, all[0].Amount.Equal(decimal.RequireFromString("120.50")))
}

func TestTransactionStore_CorruptBlobStartsEmpty(t *testing.T) {
	blobs, dir := newBlobStore(t)
	path := filepath.Join(dir, blob.KeyTransactions+".json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	s := NewTransactionStore(context.Background(), blobs, nil)
	assert.Empty(t, s.All())

	// The corrupt entry is discarded, not kept around to fail again.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func productionOrdered(t *testing.T, s *ProductionStore) {
	t.Helper()
	all := s.All()
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		require.GreaterOrEqual(t, prev.Date, cur.Date, "dates must be non-increasing")
		if prev.Date == cur.Date {
			require.LessOrEqual(t,
				models.CollectionTimeOrder(prev.CollectionTimeOfDayID),
				models.CollectionTimeOrder(cur.CollectionTimeOfDayID),
				"same-date records must follow catalog order")
		}
	}
}

func TestProductionStore_SortInvariantAcrossMutations(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewProductionStore(context.Background(), blobs, nil)
	ctx := context.Background()

	s.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "afternoon", Quantity: 250})
	s.Add(ctx, models.EggProductionRecord{Date: "2024-05-02", CollectionTimeOfDayID: "morning", Quantity: 400})
	first := s.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 380})
	unknown := s.Add(ctx, models.EggProductionRecord{Date: "2024-05-02", CollectionTimeOfDayID: "madrugada", Quantity: 5})
	productionOrdered(t, s)

	all := s.All()
	// 2024-05-02 morning before the unknown day-part on the same date.
	assert.Equal(t, "morning", all[0].CollectionTimeOfDayID)
	assert.Equal(t, unknown.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	// Moving a record keeps the invariant.
	first.Date = "2024-05-03"
	require.True(t, s.Update(ctx, first))
	productionOrdered(t, s)
	assert.Equal(t, first.ID, s.All()[0].ID)

	require.True(t, s.Delete(ctx, unknown.ID))
	productionOrdered(t, s)
	assert.Len(t, s.All(), 3)
}

func TestProductionStore_UpdateDeleteMissingAreNoOps(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewProductionStore(context.Background(), blobs, nil)
	ctx := context.Background()

	rec := s.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 100})

	assert.False(t, s.Update(ctx, models.EggProductionRecord{ID: "inexistente", Date: "2024-06-01", Quantity: 1}))
	assert.False(t, s.Delete(ctx, "inexistente"))

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, rec, all[0])
}

func TestProductionStore_AllReturnsCopy(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewProductionStore(context.Background(), blobs, nil)
	s.Add(context.Background(), models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 100})

	all := s.All()
	all[0].Quantity = 999

	assert.Equal(t, 100, s.All()[0].Quantity)
}

func TestProfileStore_DefaultsOnFirstRun(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewProfileStore(context.Background(), blobs, nil)

	profile := s.Get()
	assert.Empty(t, profile.FarmName)
	assert.Zero(t, profile.ChickenCount)
	assert.Len(t, profile.CommercialPackagingSettings, len(models.EggPackagingOptions))
}

func TestProfileStore_SaveNormalizesAndPersists(t *testing.T) {
	blobs, _ := newBlobStore(t)
	s := NewProfileStore(context.Background(), blobs, nil)

	saved := s.Save(context.Background(), models.BusinessProfile{
		FarmName:     "Granja Boa Vista",
		ChickenCount: 1000,
		CommercialPackagingSettings: []models.CommercialPackagingSetting{
			{PackagingID: "duzia", IsCommercialized: true, Price: decimal.RequireFromString("12.50")},
			{PackagingID: "caixa-antiga", IsCommercialized: true, Price: decimal.NewFromInt(99)},
		},
	})

	require.Len(t, saved.CommercialPackagingSettings, len(models.EggPackagingOptions))
	_, ok := saved.PackagingSetting("caixa-antiga")
	assert.False(t, ok)

	reloaded := NewProfileStore(context.Background(), blobs, nil)
	assert.Equal(t, saved, reloaded.Get())
}

func TestProfileStore_CorruptBlobFallsBackToDefaults(t *testing.T) {
	blobs, dir := newBlobStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, blob.KeyBusinessProfile+".json"), []byte("not json"), 0o644))

	s := NewProfileStore(context.Background(), blobs, nil)
	assert.Equal(t, models.NormalizeProfile(models.NewBusinessProfile()), s.Get())
}
