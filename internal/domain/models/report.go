package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport is the end-of-day snapshot the scheduler derives and persists.
type DailyReport struct {
	Date           string          `json:"date"`
	EggsCollected  int             `json:"eggs_collected"`
	AvailableStock int             `json:"available_stock"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	CreatedAt      time.Time       `json:"created_at"`
}
