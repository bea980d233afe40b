package repository

import "context"

// CounterName identifies a persisted document counter.
const (
	// CounterTREInvoiceFolio is the Trade Evolution invoice folio sequence.
	CounterTREInvoiceFolio = "tre_invoice_folio"
)

// CounterRepository defines the interface for persisted folio counters
type CounterRepository interface {
	// Next atomically allocates the next value of the named counter.
	// A counter that does not exist yet is created and hands out seed
	// as its first value.
	Next(ctx context.Context, name string, seed int64) (int64, error)
	// Current reads the last allocated value without advancing.
	Current(ctx context.Context, name string) (int64, bool, error)
}
