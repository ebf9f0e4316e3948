package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSort is returned for an unknown sort field or direction.
	ErrInvalidSort = errors.New("invalid sort")
)

// SortField names a product attribute that List can order by.
type SortField string

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortByName        SortField = "name"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByPrice       SortField = "price"
	SortByCreatedAt   SortField = "createdAt"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

var sortFields = map[string]SortField{
	string(SortByName):        SortByName,
	string(SortByDescription): SortByDescription,
	string(SortByCategory):    SortByCategory,
	string(SortByPrice):       SortByPrice,
	string(SortByCreatedAt):   SortByCreatedAt,
}

// IsTranslated reports whether the field is a multilingual text field.
func (f SortField) IsTranslated() bool {
	return f == SortByName || f == SortByDescription || f == SortByCategory
}

// Query holds the recognized filter, search, sort and pagination parameters of a List call.
type Query struct {
	// Language selects the translation used for category matching, translated sorting and projection.
	Language string
	// Category is matched exactly against category translation content.
	Category string
	// Search is a free-text term matched against name and description content.
	Search string

	SortBy    SortField
	SortOrder SortOrder

	Limit  int
	Offset int
}

// NewQuery returns a query with default sort and pagination.
func NewQuery() *Query {
	return &Query{
		SortBy:    SortByName,
		SortOrder: Ascending,
		Limit:     DefaultPaginationLimit,
	}
}

// WithLanguage sets the language filter.
func (q *Query) WithLanguage(language string) *Query {
	q.Language = strings.TrimSpace(language)
	return q
}

// WithCategory sets the category filter.
func (q *Query) WithCategory(category string) *Query {
	q.Category = strings.TrimSpace(category)
	return q
}

// WithSearch sets the free-text search term.
func (q *Query) WithSearch(term string) *Query {
	q.Search = strings.TrimSpace(term)
	return q
}

// ApplySort coerces raw sort parameters. Empty values keep the defaults.
func (q *Query) ApplySort(sortBy, sortOrder string) error {
	if sortBy = strings.TrimSpace(sortBy); sortBy != "" {
		field, ok := sortFields[sortBy]
		if !ok {
			return fmt.Errorf("%w: unknown sort field %q", ErrInvalidSort, sortBy)
		}
		q.SortBy = field
	}

	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "":
	case "asc", "ascending", "1":
		q.SortOrder = Ascending
	case "desc", "descending", "-1":
		q.SortOrder = Descending
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidSort, sortOrder)
	}
	return nil
}
