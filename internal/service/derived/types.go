package derived

import "github.com/shopspring/decimal"

// FinancialSummary holds the lifetime revenue/expense totals.
type FinancialSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// EggProductionSummary holds egg counts for today, the current month and the
// current year, relative to the engine clock's local calendar.
type EggProductionSummary struct {
	Today        int `json:"today"`
	CurrentMonth int `json:"currentMonth"`
	CurrentYear  int `json:"currentYear"`
}

// MonthlyFinancialPoint is one month of the January→December financial
// series. Month carries the localized short month name.
type MonthlyFinancialPoint struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlyProductionPoint is one month of the production series.
type MonthlyProductionPoint struct {
	Month    string `json:"month"`
	Quantity int    `json:"quantity"`
}

// DailyProductionPoint is one day of the daily production series. Date is
// the DD/MM display form.
type DailyProductionPoint struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// DailyPosturePoint is one day of the posture percentage series.
type DailyPosturePoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}
