// Package derived computes every read-side view of the dashboard: financial
// and production summaries, monthly and daily series, posture percentages
// and available stock. All functions are pure over the stores as of call
// time; nothing here mutates state.
package derived

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/store"
	"github.com/granjaops/granja/pkg/datefmt"
)

// Engine answers derived-data queries over the two record stores and the
// business profile.
type Engine struct {
	transactions *store.TransactionStore
	production   *store.ProductionStore
	profiles     *store.ProfileStore
	months       datefmt.Formatter
	now          func() time.Time
	logger       *zap.Logger
}

// NewEngine wires a new engine instance.
func NewEngine(transactions *store.TransactionStore, production *store.ProductionStore, profiles *store.ProfileStore, months datefmt.Formatter, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		transactions: transactions,
		production:   production,
		profiles:     profiles,
		months:       months,
		now:          time.Now,
		logger:       logger,
	}
}

// FinancialSummary totals every transaction ever recorded, split by type.
func (e *Engine) FinancialSummary() FinancialSummary {
	revenue := decimal.Zero
	expenses := decimal.Zero

	for _, t := range e.transactions.All() {
		switch t.Type {
		case models.TransactionRevenue:
			revenue = revenue.Add(t.Amount)
		case models.TransactionExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return FinancialSummary{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetProfit:     revenue.Sub(expenses),
	}
}

// EggProductionSummary sums production for today, the current month and the
// current year by date-prefix match.
func (e *Engine) EggProductionSummary() EggProductionSummary {
	now := e.now()
	today := datefmt.ISODate(now)
	monthPrefix := datefmt.ISOMonth(now.Year(), now.Month())
	yearPrefix := fmt.Sprintf("%04d", now.Year())

	var summary EggProductionSummary
	for _, rec := range e.production.All() {
		if rec.Date == today {
			summary.Today += rec.Quantity
		}
		if strings.HasPrefix(rec.Date, monthPrefix) {
			summary.CurrentMonth += rec.Quantity
		}
		if strings.HasPrefix(rec.Date, yearPrefix) {
			summary.CurrentYear += rec.Quantity
		}
	}
	return summary
}

// AvailableEggStock is total production minus total eggs sold. Overselling
// relative to recorded production yields a negative stock; that is reported
// as-is, not clamped.
func (e *Engine) AvailableEggStock() int {
	produced := 0
	for _, rec := range e.production.All() {
		produced += rec.Quantity
	}

	sold := 0
	for _, t := range e.transactions.All() {
		if t.EggSaleDetails != nil {
			sold += t.EggSaleDetails.TotalEggsSold
		}
	}

	return produced - sold
}

// MonthlyFinancialSeries returns revenue and expenses for each of the twelve
// months of year, January first.
func (e *Engine) MonthlyFinancialSeries(year int) []MonthlyFinancialPoint {
	transactions := e.transactions.All()
	points := make([]MonthlyFinancialPoint, 0, 12)

	for month := time.January; month <= time.December; month++ {
		prefix := datefmt.ISOMonth(year, month)
		revenue := decimal.Zero
		expenses := decimal.Zero

		for _, t := range transactions {
			if !strings.HasPrefix(t.Date, prefix) {
				continue
			}
			switch t.Type {
			case models.TransactionRevenue:
				revenue = revenue.Add(t.Amount)
			case models.TransactionExpense:
				expenses = expenses.Add(t.Amount)
			}
		}

		points = append(points, MonthlyFinancialPoint{
			Month:    e.months.MonthShort(time.Date(year, month, 1, 0, 0, 0, 0, time.Local)),
			Revenue:  revenue,
			Expenses: expenses,
		})
	}

	return points
}

// MonthlyProductionSeries returns egg quantities for each of the twelve
// months of year, January first.
func (e *Engine) MonthlyProductionSeries(year int) []MonthlyProductionPoint {
	records := e.production.All()
	points := make([]MonthlyProductionPoint, 0, 12)

	for month := time.January; month <= time.December; month++ {
		prefix := datefmt.ISOMonth(year, month)
		quantity := 0
		for _, rec := range records {
			if strings.HasPrefix(rec.Date, prefix) {
				quantity += rec.Quantity
			}
		}

		points = append(points, MonthlyProductionPoint{
			Month:    e.months.MonthShort(time.Date(year, month, 1, 0, 0, 0, 0, time.Local)),
			Quantity: quantity,
		})
	}

	return points
}

// DailyProductionSeries sums production per day for the last days calendar
// days, ending today, in chronological order.
func (e *Engine) DailyProductionSeries(days int) []DailyProductionPoint {
	records := e.production.All()
	now := e.now()
	points := make([]DailyProductionPoint, 0, days)

	for i := 0; i < days; i++ {
		day := dayOffset(now, -i)
		iso := datefmt.ISODate(day)

		quantity := 0
		for _, rec := range records {
			if rec.Date == iso {
				quantity += rec.Quantity
			}
		}

		points = append(points, DailyProductionPoint{Date: datefmt.DayMonth(day), Quantity: quantity})
	}

	reverse(points)
	return points
}

// DailyPosturePercentageSeries reports eggs collected per day as a
// percentage of the hen count, for the last days calendar days in
// chronological order. A hen count of zero or less yields all-zero
// percentages.
//
// Production is bucketed by its DD/MM display date, so records from
// different years sharing a day and month land in the same bucket. Carried
// over as documented behavior from the dashboard this replaces.
func (e *Engine) DailyPosturePercentageSeries(days int) []DailyPosturePoint {
	now := e.now()
	hens := e.profiles.Get().ChickenCount
	points := make([]DailyPosturePoint, 0, days)

	if hens <= 0 {
		for i := 0; i < days; i++ {
			points = append(points, DailyPosturePoint{Date: datefmt.DayMonth(dayOffset(now, -i))})
		}
		reverse(points)
		return points
	}

	buckets := make(map[string]int)
	for _, rec := range e.production.All() {
		t, err := time.ParseInLocation(datefmt.ISOLayout, rec.Date, now.Location())
		if err != nil {
			e.logger.Debug("skip record with invalid date", zap.String("date", rec.Date), zap.Error(err))
			continue
		}
		buckets[datefmt.DayMonth(t)] += rec.Quantity
	}

	for i := 0; i < days; i++ {
		day := datefmt.DayMonth(dayOffset(now, -i))
		percentage := math.Round(float64(buckets[day])/float64(hens)*100*10) / 10
		points = append(points, DailyPosturePoint{Date: day, Percentage: percentage})
	}

	reverse(points)
	return points
}

// dayOffset returns the local calendar day offset days away from t, at
// midnight. time.Date normalizes out-of-range day values.
func dayOffset(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, t.Location())
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
