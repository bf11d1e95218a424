// Package content fetches CMS documents. Sources speak the CMS list query
// model (collection, where, sort, limit, page, depth); Store layers the
// typed queries the site needs on top of any Source.
package content

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by single-document queries that match nothing.
var ErrNotFound = errors.New("document not found")

// Operator is a where-clause comparison.
type Operator string

const (
	Equals      Operator = "equals"
	NotEquals   Operator = "not_equals"
	In          Operator = "in"
	NotIn       Operator = "not_in"
	LessThan    Operator = "less_than"
	GreaterThan Operator = "greater_than"
	Exists      Operator = "exists"
	Like        Operator = "like"
)

// Filter is one where-clause term. Field may be a dotted path. For In and
// NotIn, Value is a comma separated list; for Exists it is "true" or
// "false".
type Filter struct {
	Field string
	Op    Operator
	Value string
}

// Query selects documents of one collection. Terms in Where are ANDed.
// Sort names a field, descending when prefixed with "-". Depth is how many
// levels of relations get populated. Unpaged queries ignore Page but still
// honor a positive Limit.
type Query struct {
	Collection string
	Where      []Filter
	Sort       string
	Limit      int
	Page       int
	Depth      int
	Draft      bool
	Unpaged    bool
}

// DefaultLimit is the page size of queries that set none.
const DefaultLimit = 10

// Result is one page of matches.
type Result struct {
	Docs       []json.RawMessage `json:"docs"`
	TotalDocs  int               `json:"totalDocs"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"page"`
}

// Source runs queries against a document store.
type Source interface {
	Find(ctx context.Context, q Query) (*Result, error)
}
