package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
	"github.com/granjaops/granja/internal/store"
)

func newStores(t *testing.T) (*store.TransactionStore, *store.ProductionStore) {
	t.Helper()
	blobs, err := blob.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()
	return store.NewTransactionStore(ctx, blobs, nil), store.NewProductionStore(ctx, blobs, nil)
}

func TestBuild_FinancialFlattensEggSaleAndFreight(t *testing.T) {
	transactions, production := newStores(t)
	svc := NewService(transactions, production, "", nil, nil)
	ctx := context.Background()

	freight := decimal.RequireFromString("15.00")
	transactions.Add(ctx, models.Transaction{
		Type:          models.TransactionRevenue,
		Date:          "2024-05-01",
		Description:   "Venda de ovos, feira",
		Amount:        decimal.RequireFromString("135.00"),
		Category:      models.EggSaleCategory,
		PaymentMethod: models.PaymentPix,
		EggSaleDetails: &models.EggSaleDetails{
			PackagingID:    "bandeja-30",
			PackagingLabel: "Bandeja (30 ovos)",
			UnitsSold:      4,
			TotalEggsSold:  120,
		},
		FreightCostApplied: &freight,
	})
	transactions.Add(ctx, models.Transaction{
		Type:        models.TransactionExpense,
		Date:        "2024-05-02",
		Description: "Ração",
		Amount:      decimal.NewFromInt(40),
		Category:    "Ração",
	})

	file, err := svc.Build(KindFinancial)
	require.NoError(t, err)
	assert.Equal(t, "transacoes_financeiras.csv", file.Name)

	doc := string(file.Content)
	require.True(t, strings.HasPrefix(doc, BOM))
	lines := strings.Split(strings.TrimPrefix(doc, BOM), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], ",")
	assert.Equal(t, []string{
		"id", "date", "type", "description", "category", "amount", "paymentMethod",
		"packagingId", "packagingLabel", "unitsSold", "totalEggsSold", "freightCostApplied",
	}, header)

	// Store order is date-descending, so the expense row comes first and
	// leaves the egg sale columns empty.
	assert.Contains(t, lines[1], "Ração")
	assert.True(t, strings.HasSuffix(lines[1], ",,,,,"), "egg sale columns must be empty: %q", lines[1])
	assert.Contains(t, lines[2], `"Venda de ovos, feira"`)
	assert.Contains(t, lines[2], "120")
	assert.True(t, strings.HasSuffix(lines[2], "15"))
}

func TestBuild_ProductionAddsResolvedLabel(t *testing.T) {
	transactions, production := newStores(t)
	svc := NewService(transactions, production, "", nil, nil)
	ctx := context.Background()

	production.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 400})
	production.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "madrugada", Quantity: 5})

	file, err := svc.Build(KindProduction)
	require.NoError(t, err)
	assert.Equal(t, "producao_ovos.csv", file.Name)

	doc := strings.TrimPrefix(string(file.Content), BOM)
	lines := strings.Split(doc, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,date,collectionTimeOfDayId,collectionTimeOfDayLabel,quantity", lines[0])
	assert.Contains(t, doc, "Manhã")
	// Unknown day-part ids fall back to the raw id as the label.
	assert.Contains(t, doc, "madrugada,madrugada")
}

func TestBuild_EmptyCollectionIsRefused(t *testing.T) {
	transactions, production := newStores(t)
	svc := NewService(transactions, production, "", nil, nil)

	_, err := svc.Build(KindFinancial)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = svc.Build(KindProduction)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBuild_UnknownKind(t *testing.T) {
	transactions, production := newStores(t)
	svc := NewService(transactions, production, "", nil, nil)

	_, err := svc.Build(Kind("planilha"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestExport_WritesDownloadFile(t *testing.T) {
	transactions, production := newStores(t)
	dir := t.TempDir()
	svc := NewService(transactions, production, dir, nil, nil)
	ctx := context.Background()

	production.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 400})

	file, err := svc.Export(ctx, KindProduction)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, file.Name))
	require.NoError(t, err)
	assert.Equal(t, file.Content, written)
}

type recordingMirror struct {
	ranges []string
	rows   [][][]interface{}
}

func (m *recordingMirror) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	m.ranges = append(m.ranges, sheetRange)
	m.rows = append(m.rows, rows)
	return nil
}

func TestExport_MirrorsRowsToSheet(t *testing.T) {
	transactions, production := newStores(t)
	mirror := &recordingMirror{}
	svc := NewService(transactions, production, "", mirror, nil)
	ctx := context.Background()

	production.Add(ctx, models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 400})

	_, err := svc.Export(ctx, KindProduction)
	require.NoError(t, err)

	require.Len(t, mirror.rows, 1)
	assert.Equal(t, []string{"Producao!A:Z"}, mirror.ranges)
	// Header plus one record.
	assert.Len(t, mirror.rows[0], 2)
	assert.Equal(t, "id", mirror.rows[0][0][0])
}
