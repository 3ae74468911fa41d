package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
	"github.com/granjaops/granja/internal/service/export"
	"github.com/granjaops/granja/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.TransactionStore, *store.ProductionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blobs, err := blob.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	transactions := store.NewTransactionStore(ctx, blobs, nil)
	production := store.NewProductionStore(ctx, blobs, nil)

	records := NewRecordsHandler(transactions, production, nil)
	exports := NewExportHandler(export.NewService(transactions, production, "", nil, nil), nil)

	r := gin.New()
	r.POST("/transactions", records.CreateTransaction)
	r.GET("/transactions", records.ListTransactions)
	r.POST("/production", records.CreateProductionRecord)
	r.PUT("/production/:id", records.UpdateProductionRecord)
	r.DELETE("/production/:id", records.DeleteProductionRecord)
	r.GET("/export/:kind", exports.Download)

	return r, transactions, production
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTransaction_ResolvesEggSaleFromCatalog(t *testing.T) {
	r, transactions, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/transactions", gin.H{
		"type":        "revenue",
		"date":        "2024-05-01",
		"description": "Venda de ovos",
		"amount":      "135.00",
		"category":    "Venda de Ovos",
		"eggSale":     gin.H{"packagingId": "bandeja-30", "unitsSold": 4},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.NotNil(t, stored.EggSaleDetails)
	assert.Equal(t, 120, stored.EggSaleDetails.TotalEggsSold)
	assert.Equal(t, "Bandeja (30 ovos)", stored.EggSaleDetails.PackagingLabel)

	all := transactions.All()
	require.Len(t, all, 1)
	assert.Equal(t, stored.ID, all[0].ID)
}

func TestCreateTransaction_Validation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"bad type", gin.H{"type": "transfer", "date": "2024-05-01", "amount": "10"}},
		{"bad date", gin.H{"type": "revenue", "date": "01/05/2024", "amount": "10"}},
		{"negative amount", gin.H{"type": "revenue", "date": "2024-05-01", "amount": "-1"}},
		{"bad payment method", gin.H{"type": "revenue", "date": "2024-05-01", "amount": "10", "paymentMethod": "cheque"}},
		{"unknown packaging", gin.H{"type": "revenue", "date": "2024-05-01", "amount": "10", "eggSale": gin.H{"packagingId": "palete", "unitsSold": 1}}},
		{"zero units", gin.H{"type": "revenue", "date": "2024-05-01", "amount": "10", "eggSale": gin.H{"packagingId": "duzia", "unitsSold": 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/transactions", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProductionLifecycleOverHTTP(t *testing.T) {
	r, _, production := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/production", gin.H{
		"date":                  "2024-05-01",
		"collectionTimeOfDayId": "morning",
		"quantity":              400,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var rec models.EggProductionRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))

	w = doJSON(t, r, http.MethodPut, "/production/"+rec.ID, gin.H{
		"date":                  "2024-05-01",
		"collectionTimeOfDayId": "afternoon",
		"quantity":              380,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/production/inexistente", gin.H{
		"date": "2024-05-01", "collectionTimeOfDayId": "morning", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/production/"+rec.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, production.All())
}

func TestExportDownload(t *testing.T) {
	r, _, production := newTestRouter(t)

	// Empty collection refuses the export.
	w := doJSON(t, r, http.MethodGet, "/export/production", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/export/planilha", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	production.Add(context.Background(), models.EggProductionRecord{Date: "2024-05-01", CollectionTimeOfDayID: "morning", Quantity: 400})

	w = doJSON(t, r, http.MethodGet, "/export/production", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "producao_ovos.csv")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\xEF\xBB\xBF")))
}
