package models

import "github.com/shopspring/decimal"

// CommercialPackagingSetting records whether a packaging option is sold by
// this farm and at what unit price.
type CommercialPackagingSetting struct {
	PackagingID      string          `json:"packagingId"`
	IsCommercialized bool            `json:"isCommercialized"`
	Price            decimal.Decimal `json:"price"`
}

// BusinessProfile is the singleton farm-level configuration.
type BusinessProfile struct {
	FarmName                    string                       `json:"farmName"`
	ShedCount                   int                          `json:"shedCount"`
	ChickenCount                int                          `json:"chickenCount"`
	CurrentBatchAge             string                       `json:"currentBatchAge"`
	CommercialPackagingSettings []CommercialPackagingSetting `json:"commercialPackagingSettings"`
	DefaultFreightCost          decimal.Decimal              `json:"defaultFreightCost"`
}

// NewBusinessProfile returns the zero-valued profile used on first run, with
// one disabled packaging setting per catalog entry.
func NewBusinessProfile() BusinessProfile {
	return BusinessProfile{
		CommercialPackagingSettings: defaultPackagingSettings(),
		DefaultFreightCost:          decimal.Zero,
	}
}

// NormalizeProfile reconciles the profile's packaging settings against the
// fixed packaging catalog: settings for unknown packaging ids are dropped,
// missing ones are synthesized disabled at price zero, and the result follows
// catalog order. Called on every load and save so the engine always sees
// exactly one setting per catalog entry.
func NormalizeProfile(p BusinessProfile) BusinessProfile {
	byID := make(map[string]CommercialPackagingSetting, len(p.CommercialPackagingSettings))
	for _, s := range p.CommercialPackagingSettings {
		byID[s.PackagingID] = s
	}

	settings := make([]CommercialPackagingSetting, 0, len(EggPackagingOptions))
	for _, opt := range EggPackagingOptions {
		if existing, ok := byID[opt.ID]; ok {
			settings = append(settings, existing)
			continue
		}
		settings = append(settings, CommercialPackagingSetting{
			PackagingID: opt.ID,
			Price:       decimal.Zero,
		})
	}

	p.CommercialPackagingSettings = settings
	return p
}

// PackagingSetting returns the setting for a packaging id after
// normalization; ok is false for ids outside the catalog.
func (p BusinessProfile) PackagingSetting(packagingID string) (CommercialPackagingSetting, bool) {
	for _, s := range p.CommercialPackagingSettings {
		if s.PackagingID == packagingID {
			return s, true
		}
	}
	return CommercialPackagingSetting{}, false
}

func defaultPackagingSettings() []CommercialPackagingSetting {
	settings := make([]CommercialPackagingSetting, 0, len(EggPackagingOptions))
	for _, opt := range EggPackagingOptions {
		settings = append(settings, CommercialPackagingSetting{
			PackagingID: opt.ID,
			Price:       decimal.Zero,
		})
	}
	return settings
}
