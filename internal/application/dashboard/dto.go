package dashboard

// FallbackPolicy decides what happens when an invoice filter matches
// nothing. The aggregator itself never guesses; screens opt into falling
// back to the unfiltered book explicitly.
type FallbackPolicy string

const (
	// FallbackNone keeps the zero totals of an empty match.
	FallbackNone FallbackPolicy = "none"
	// FallbackUnfiltered re-aggregates over the whole collection when the
	// filter matched nothing.
	FallbackUnfiltered FallbackPolicy = "unfiltered"
)

// ListQuery carries the shared list controls: free-text search, enum
// filters, and field sort. Zero values and the sentinel "all" disable the
// corresponding control.
type ListQuery struct {
	Search  string
	Status  string
	SortBy  string
	OrderBy string // asc or desc
}

// InvoiceQuery narrows the invoice list.
type InvoiceQuery struct {
	ListQuery
	EditorID string
	Month    string
}
