package models

import "github.com/shopspring/decimal"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionRevenue TransactionType = "revenue"
	TransactionExpense TransactionType = "expense"
)

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCash PaymentMethod = "cash"
)

// EggSaleDetails is attached to a transaction when it represents an egg
// sale. TotalEggsSold is UnitsSold times the eggs-per-unit of the packaging
// and is the quantity debited from available stock.
type EggSaleDetails struct {
	PackagingID    string `json:"packagingId"`
	PackagingLabel string `json:"packagingLabel"`
	UnitsSold      int    `json:"unitsSold"`
	TotalEggsSold  int    `json:"totalEggsSold"`
}

// Transaction captures a single financial movement. Date carries a plain
// local calendar date in YYYY-MM-DD form, never a time component.
type Transaction struct {
	ID                 string           `json:"id"`
	Type               TransactionType  `json:"type"`
	Date               string           `json:"date"`
	Description        string           `json:"description"`
	Amount             decimal.Decimal  `json:"amount"`
	Category           string           `json:"category,omitempty"`
	PaymentMethod      PaymentMethod    `json:"paymentMethod,omitempty"`
	EggSaleDetails     *EggSaleDetails  `json:"eggSaleDetails,omitempty"`
	FreightCostApplied *decimal.Decimal `json:"freightCostApplied,omitempty"`
}

// IsEggSale reports whether the transaction carries egg sale details.
func (t Transaction) IsEggSale() bool {
	return t.EggSaleDetails != nil
}
