package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPagination is returned when limit or offset cannot be coerced.
	ErrInvalidPagination = errors.New("invalid pagination")
)

const (
	// DefaultPaginationLimit is the default number of items per page.
	DefaultPaginationLimit = 10
	maxPaginationLimit     = 100
)

// ApplyPagination coerces raw limit and offset values. Empty values keep the defaults.
func (q *Query) ApplyPagination(limit, offset string) error {
	l, err := parseNonNegative("limit", limit)
	if err != nil {
		return err
	}
	o, err := parseNonNegative("offset", offset)
	if err != nil {
		return err
	}

	q.Limit = DefaultPaginationLimit
	if l > 0 {
		q.Limit = min(maxPaginationLimit, l)
	}
	q.Offset = o
	return nil
}

func parseNonNegative(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidPagination, name)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidPagination, name)
	}
	return n, nil
}
