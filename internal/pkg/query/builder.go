package query

import (
	"fmt"
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// Statement is a built SQL query with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

type ordering struct {
	expr      Condition
	direction Direction
}

// Builder constructs PostgreSQL SELECT queries.
// Every method returns a new Builder, so a base query can be shared between a
// page query and its Count.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderings    []ordering
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy appends a sort key. Keys are applied in the order they were added.
func (b *Builder) OrderBy(expr Condition, direction Direction) *Builder {
	nb := b.clone()
	nb.orderings = append(nb.orderings, ordering{expr: expr, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder for COUNT(*) over the same FROM and WHERE clauses, without
// ordering or pagination.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orderings = nil
	nb.limitVal = 0
	nb.offsetVal = 0
	return nb
}

// Build constructs the final statement.
func (b *Builder) Build() Statement {
	var sql strings.Builder
	var args []any

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.whereClauses) > 0 {
		parts := make([]string, 0, len(b.whereClauses))
		for _, condition := range b.whereClauses {
			fragment, condArgs := condition.SQL(len(args) + 1)
			parts = append(parts, fragment)
			args = append(args, condArgs...)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderings) > 0 {
		parts := make([]string, 0, len(b.orderings))
		for _, o := range b.orderings {
			fragment, exprArgs := o.expr.SQL(len(args) + 1)
			args = append(args, exprArgs...)
			if o.direction == Desc {
				fragment += " DESC NULLS LAST"
			} else {
				fragment += " ASC NULLS LAST"
			}
			parts = append(parts, fragment)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limitVal > 0 {
		args = append(args, b.limitVal)
		sql.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	if b.offsetVal > 0 {
		args = append(args, b.offsetVal)
		sql.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return Statement{SQL: sql.String(), Args: args}
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderings:    make([]ordering, len(b.orderings)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.whereClauses, b.whereClauses)
	copy(nb.orderings, b.orderings)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nArgs: %v", stmt.SQL, stmt.Args)
}
