package types

import (
	"context"
	"errors"
)

// Row is one record as exchanged with a backend: column name to value.
type Row = map[string]any

// Collection provides single-round-trip operations on one named record
// collection. Every method issues exactly one request to the store.
type Collection interface {
	// Select returns all rows matching q.Filters, ordered by q.Order.
	// An empty result is an empty slice, not an error.
	Select(ctx context.Context, q Query) ([]Row, error)

	// Insert stores exactly one row and returns it as confirmed by the
	// store, including any store-assigned id.
	Insert(ctx context.Context, row Row) (Row, error)

	// Update applies values to the single row matching q.Filters and
	// returns the updated row. Columns absent from values are unchanged.
	// Fails with an error matching ErrNotFound when no row matches and
	// ErrMultipleRows when more than one does; nothing is written then.
	Update(ctx context.Context, q Query, values Row) (Row, error)

	// Delete removes every row matching q.Filters. Matching nothing is not
	// an error.
	Delete(ctx context.Context, q Query) error
}

// Collection operation errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrMultipleRows    = errors.New("more than one record matched")
	ErrDuplicateID     = errors.New("record id already exists")
	ErrInvalidColumn   = errors.New("invalid column name")
	ErrInvalidOperator = errors.New("invalid filter operator")
)
