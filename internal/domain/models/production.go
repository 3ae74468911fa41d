package models

// EggProductionRecord captures one egg collection entry: how many eggs were
// gathered on a given date during a given part of the day.
type EggProductionRecord struct {
	ID                    string `json:"id"`
	Date                  string `json:"date"`
	CollectionTimeOfDayID string `json:"collectionTimeOfDayId"`
	Quantity              int    `json:"quantity"`
}
