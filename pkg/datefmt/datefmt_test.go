package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthShortLocales(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "mar", New("pt-BR").MonthShort(march))
	assert.Equal(t, "Mar", New("en-US").MonthShort(march))
}

func TestNewFallsBackToDefaultLocale(t *testing.T) {
	f := New("fr-FR")
	assert.Equal(t, DefaultLocale, f.Locale())
	assert.Equal(t, "dez", f.MonthShort(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)))
}

func TestPlainDateForms(t *testing.T) {
	day := time.Date(2024, time.May, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "2024-05-01", ISODate(day))
	assert.Equal(t, "01/05", DayMonth(day))
	assert.Equal(t, "2024-05", ISOMonth(2024, time.May))
	assert.Equal(t, "0980-01", ISOMonth(980, time.January))
}
