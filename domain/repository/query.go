// Package repository holds the query options understood by every store.
package repository

// Direction is a sort direction, spelled the way SQL spells it.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Condition matches rows whose field equals a value.
type Condition struct {
	field string
	value any
}

// Field returns the column name.
func (c Condition) Field() string { return c.field }

// Value returns the value the column must equal.
func (c Condition) Value() any { return c.value }

// Order sorts results by one column.
type Order struct {
	field     string
	direction Direction
}

// Field returns the column name.
func (o Order) Field() string { return o.field }

// Direction returns the sort direction.
func (o Order) Direction() Direction { return o.direction }

// Query is the combined effect of a list of options.
type Query struct {
	where   []Condition
	orderBy []Order
	limit   int
	offset  int
}

// Option narrows, orders or pages a Query.
type Option func(*Query)

// Build applies options in order to an empty Query.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		opt(&q)
	}
	return q
}

// Conditions returns a copy of the equality conditions, all of which must hold.
func (q Query) Conditions() []Condition { return append([]Condition(nil), q.where...) }

// Orders returns a copy of the sort keys, most significant first.
func (q Query) Orders() []Order { return append([]Order(nil), q.orderBy...) }

// Limit returns the maximum number of results, 0 for no limit.
func (q Query) Limit() int { return q.limit }

// Offset returns the number of results skipped.
func (q Query) Offset() int { return q.offset }

// Where requires field to equal value. Domain packages wrap it in typed
// filters such as run.WithStatus.
func Where(field string, value any) Option {
	return func(q *Query) {
		q.where = append(q.where, Condition{field: field, value: value})
	}
}

// WithID selects the row with the given primary key.
func WithID(id int64) Option {
	return Where("id", id)
}

// OrderBy appends a sort key.
func OrderBy(field string, direction Direction) Option {
	return func(q *Query) {
		q.orderBy = append(q.orderBy, Order{field: field, direction: direction})
	}
}

// WithLimit caps the number of results. Non-positive n removes the cap.
func WithLimit(n int) Option {
	return func(q *Query) {
		q.limit = max(n, 0)
	}
}

// WithPage selects page number (1-based) of the given size. Pages below 1
// are treated as the first page.
func WithPage(number, size int) Option {
	return func(q *Query) {
		q.limit = max(size, 0)
		q.offset = (max(number, 1) - 1) * q.limit
	}
}
