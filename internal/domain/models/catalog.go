package models

// EggPackagingOption describes a sellable packaging unit from the fixed
// commercial catalog.
type EggPackagingOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	EggsPerUnit int    `json:"eggsPerUnit"`
}

// CollectionTimeOption describes a day-part used to tag production records.
// Order drives intra-day sorting of records sharing a date.
type CollectionTimeOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// EggPackagingOptions is the fixed packaging catalog.
var EggPackagingOptions = []EggPackagingOption{
	{ID: "meia-duzia", Label: "Meia Dúzia (6 ovos)", EggsPerUnit: 6},
	{ID: "duzia", Label: "Dúzia (12 ovos)", EggsPerUnit: 12},
	{ID: "bandeja-30", Label: "Bandeja (30 ovos)", EggsPerUnit: 30},
	{ID: "caixa-360", Label: "Caixa (360 ovos)", EggsPerUnit: 360},
}

// CollectionTimeOptions is the fixed day-part catalog.
var CollectionTimeOptions = []CollectionTimeOption{
	{ID: "morning", Label: "Manhã", Order: 1},
	{ID: "afternoon", Label: "Tarde", Order: 2},
	{ID: "end-of-day", Label: "Final do Dia", Order: 3},
}

// UnknownCollectionOrder sorts records with an unrecognized day-part id after
// every cataloged one on the same date.
const UnknownCollectionOrder = 99

// RevenueCategories and ExpenseCategories are the labels offered on
// transaction entry. The first revenue category marks an egg sale.
var (
	RevenueCategories = []string{
		"Venda de Ovos",
		"Venda de Aves",
		"Venda de Esterco",
		"Outras Receitas",
	}
	ExpenseCategories = []string{
		"Ração",
		"Medicamentos e Vacinas",
		"Energia e Água",
		"Embalagens",
		"Manutenção",
		"Mão de Obra",
		"Outras Despesas",
	}
)

// EggSaleCategory is the revenue category that triggers stock debiting.
var EggSaleCategory = RevenueCategories[0]

// PackagingByID looks up a packaging option in the catalog.
func PackagingByID(id string) (EggPackagingOption, bool) {
	for _, opt := range EggPackagingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return EggPackagingOption{}, false
}

// CollectionTimeOrder resolves the sort order for a day-part id, falling back
// to UnknownCollectionOrder when the id is not in the catalog.
func CollectionTimeOrder(id string) int {
	for _, opt := range CollectionTimeOptions {
		if opt.ID == id {
			return opt.Order
		}
	}
	return UnknownCollectionOrder
}

// CollectionTimeLabel resolves the display label for a day-part id, falling
// back to the raw id when it is not in the catalog.
func CollectionTimeLabel(id string) string {
	for _, opt := range CollectionTimeOptions {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}
