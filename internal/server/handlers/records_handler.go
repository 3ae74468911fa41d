package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/store"
	"github.com/granjaops/granja/pkg/datefmt"
)

// RecordsHandler exposes the two record collections over HTTP.
type RecordsHandler struct {
	transactions *store.TransactionStore
	production   *store.ProductionStore
	logger       *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter.
func NewRecordsHandler(transactions *store.TransactionStore, production *store.ProductionStore, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{transactions: transactions, production: production, logger: logger}
}

type eggSaleRequest struct {
	PackagingID string `json:"packagingId"`
	UnitsSold   int    `json:"unitsSold"`
}

type transactionRequest struct {
	Type          models.TransactionType `json:"type"`
	Date          string                 `json:"date"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      string                 `json:"category"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
	EggSale       *eggSaleRequest        `json:"eggSale"`
	FreightCost   *decimal.Decimal       `json:"freightCost"`
}

// CreateTransaction records a financial transaction. Egg sale details are
// resolved against the packaging catalog so the recorded totalEggsSold
// always equals unitsSold times the packaging's eggs-per-unit.
func (h *RecordsHandler) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid transaction payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if req.Type != models.TransactionRevenue && req.Type != models.TransactionExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be revenue or expense"})
		return
	}
	if _, err := time.Parse(datefmt.ISOLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
		return
	}
	if req.PaymentMethod != "" && req.PaymentMethod != models.PaymentPix && req.PaymentMethod != models.PaymentCash {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethod must be pix or cash"})
		return
	}
	if req.FreightCost != nil && req.FreightCost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "freightCost must not be negative"})
		return
	}

	transaction := models.Transaction{
		Type:               req.Type,
		Date:               req.Date,
		Description:        req.Description,
		Amount:             req.Amount,
		Category:           req.Category,
		PaymentMethod:      req.PaymentMethod,
		FreightCostApplied: req.FreightCost,
	}

	if req.EggSale != nil {
		packaging, ok := models.PackagingByID(req.EggSale.PackagingID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown packagingId"})
			return
		}
		if req.EggSale.UnitsSold <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unitsSold must be positive"})
			return
		}
		transaction.EggSaleDetails = &models.EggSaleDetails{
			PackagingID:    packaging.ID,
			PackagingLabel: packaging.Label,
			UnitsSold:      req.EggSale.UnitsSold,
			TotalEggsSold:  req.EggSale.UnitsSold * packaging.EggsPerUnit,
		}
	}

	stored := h.transactions.Add(c.Request.Context(), transaction)
	c.JSON(http.StatusCreated, stored)
}

// ListTransactions returns the collection in date-descending order.
func (h *RecordsHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.transactions.All())
}

type productionRequest struct {
	Date                  string `json:"date"`
	CollectionTimeOfDayID string `json:"collectionTimeOfDayId"`
	Quantity              int    `json:"quantity"`
}

func (r productionRequest) validate() string {
	if _, err := time.Parse(datefmt.ISOLayout, r.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if r.Quantity < 0 {
		return "quantity must not be negative"
	}
	return ""
}

// CreateProductionRecord records one egg collection entry.
func (h *RecordsHandler) CreateProductionRecord(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid production payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	stored := h.production.Add(c.Request.Context(), models.EggProductionRecord{
		Date:                  req.Date,
		CollectionTimeOfDayID: req.CollectionTimeOfDayID,
		Quantity:              req.Quantity,
	})
	c.JSON(http.StatusCreated, stored)
}

// ListProductionRecords returns the collection in invariant order.
func (h *RecordsHandler) ListProductionRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.production.All())
}

// UpdateProductionRecord replaces the record with the path id.
func (h *RecordsHandler) UpdateProductionRecord(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid production payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	record := models.EggProductionRecord{
		ID:                    c.Param("id"),
		Date:                  req.Date,
		CollectionTimeOfDayID: req.CollectionTimeOfDayID,
		Quantity:              req.Quantity,
	}
	if !h.production.Update(c.Request.Context(), record) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteProductionRecord removes the record with the path id.
func (h *RecordsHandler) DeleteProductionRecord(c *gin.Context) {
	if !h.production.Delete(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
