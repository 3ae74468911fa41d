// Package datefmt holds the small locale-aware date formatting used by the
// derived-data layer, so aggregation code stays locale-independent and tests
// can pin a locale.
package datefmt

import (
	"fmt"
	"time"
)

// ISOLayout is the canonical plain-date form records carry.
const ISOLayout = "2006-01-02"

var shortMonths = map[string][12]string{
	"pt-BR": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	"en-US": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// DefaultLocale is used when a requested locale has no month table.
const DefaultLocale = "pt-BR"

// Formatter renders calendar dates for one fixed locale.
type Formatter struct {
	months [12]string
	locale string
}

// New returns a formatter for the given BCP 47 locale tag, falling back to
// DefaultLocale when the tag is unknown.
func New(locale string) Formatter {
	months, ok := shortMonths[locale]
	if !ok {
		locale = DefaultLocale
		months = shortMonths[DefaultLocale]
	}
	return Formatter{months: months, locale: locale}
}

// Locale reports the locale the formatter resolved to.
func (f Formatter) Locale() string { return f.locale }

// MonthShort renders the localized short month name of t.
func (f Formatter) MonthShort(t time.Time) string {
	return f.months[int(t.Month())-1]
}

// ISODate renders t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(ISOLayout)
}

// ISOMonth renders a YYYY-MM prefix for the given year and month.
func ISOMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// DayMonth renders t as DD/MM, the display form used on daily charts.
func DayMonth(t time.Time) string {
	return t.Format("02/01")
}
