// Package blob is the persistence boundary for the application's durable
// state: three named blobs (transactions, egg production, business profile)
// plus daily report snapshots, written as JSON and read back leniently.
package blob

import "context"

// Well-known blob keys.
const (
	KeyTransactions    = "granja_transactions"
	KeyEggProduction   = "granja_egg_production"
	KeyBusinessProfile = "granja_business_details"

	// KeyDailyReportPrefix prefixes one key per snapshot date.
	KeyDailyReportPrefix = "daily_report_"
)

// Store reads and writes named JSON blobs. Implementations must treat an
// unparsable payload as absent — the corrupt entry is discarded and the
// caller keeps its default — rather than surfacing a decode error.
type Store interface {
	// Load unmarshals the blob stored under key into out, reporting whether a
	// usable value was found.
	Load(ctx context.Context, key string, out interface{}) (bool, error)

	// Save marshals value as JSON and stores it under key, replacing any
	// previous payload.
	Save(ctx context.Context, key string, value interface{}) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
