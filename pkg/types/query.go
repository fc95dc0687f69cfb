package types

import "fmt"

// Filter operators understood by every backend.
const (
	OpEq  = "eq"
	OpNeq = "neq"
	OpGt  = "gt"
	OpGte = "gte"
	OpLt  = "lt"
	OpLte = "lte"
)

var knownOperators = map[string]bool{
	OpEq: true, OpNeq: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true,
}

// Filter restricts a query to rows whose Column compares to Value by Op.
type Filter struct {
	Column string
	Op     string
	Value  any
}

// Order sorts query results by Column.
type Order struct {
	Column     string
	Descending bool
}

// Query selects rows of a collection. Filters are ANDed together.
type Query struct {
	Filters []Filter
	Order   []Order
}

// Eq returns a Filter matching rows where column equals value.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Asc orders by column, oldest or smallest first.
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc orders by column, newest or largest first.
func Desc(column string) Order {
	return Order{Column: column, Descending: true}
}

// Where returns a Query with the given filters.
func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

// OrderBy returns a copy of q with the given orderings appended.
func (q Query) OrderBy(orders ...Order) Query {
	out := Query{
		Filters: append([]Filter(nil), q.Filters...),
		Order:   append(append([]Order(nil), q.Order...), orders...),
	}
	return out
}

// Validate checks column names and operators so backends can build
// requests from them safely.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if !ValidIdentifier(f.Column) {
			return fmt.Errorf("filter column %q: %w", f.Column, ErrInvalidColumn)
		}
		if !knownOperators[f.Op] {
			return fmt.Errorf("filter operator %q: %w", f.Op, ErrInvalidOperator)
		}
	}
	for _, o := range q.Order {
		if !ValidIdentifier(o.Column) {
			return fmt.Errorf("order column %q: %w", o.Column, ErrInvalidColumn)
		}
	}
	return nil
}
