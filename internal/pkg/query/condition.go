package query

import (
	"fmt"
	"strings"
)

// Condition represents a SQL fragment with positional PostgreSQL parameters.
// argIndex is the number of the first placeholder the fragment may use ($argIndex, $argIndex+1, ...).
type Condition interface {
	SQL(argIndex int) (string, []any)
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value any
}

// Eq creates a condition for equality comparison.
// Example: Eq("id", id) generates "id = $1"
func Eq(field string, value any) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(argIndex int) (string, []any) {
	return fmt.Sprintf("%s = $%d", c.field, argIndex), []any{c.value}
}

// containsCondition implements JSONB containment (field @> value).
type containsCondition struct {
	field string
	value string
}

// JSONContains creates a JSONB containment condition. value must be a JSON document.
// Example: JSONContains("category", `[{"content":"Office"}]`) generates "category @> $1::jsonb"
func JSONContains(field string, value string) Condition {
	return &containsCondition{field: field, value: value}
}

func (c *containsCondition) SQL(argIndex int) (string, []any) {
	return fmt.Sprintf("%s @> $%d::jsonb", c.field, argIndex), []any{c.value}
}

// textSearchCondition matches a tsvector column against a plain text query.
type textSearchCondition struct {
	column string
	config string
	terms  []string
}

// TextSearch creates a full-text condition matching rows that contain any whitespace separated term.
// Example: TextSearch("search_vector", "simple", "red pen") generates
// "search_vector @@ (plainto_tsquery('simple', $1) || plainto_tsquery('simple', $2))"
func TextSearch(column, config, input string) Condition {
	terms := strings.Fields(input)
	if len(terms) == 0 {
		terms = []string{input}
	}
	return &textSearchCondition{column: column, config: config, terms: terms}
}

func (c *textSearchCondition) SQL(argIndex int) (string, []any) {
	queries := make([]string, 0, len(c.terms))
	args := make([]any, 0, len(c.terms))
	for i, term := range c.terms {
		queries = append(queries, fmt.Sprintf("plainto_tsquery('%s', $%d)", c.config, argIndex+i))
		args = append(args, term)
	}
	if len(queries) == 1 {
		return fmt.Sprintf("%s @@ %s", c.column, queries[0]), args
	}
	return fmt.Sprintf("%s @@ (%s)", c.column, strings.Join(queries, " || ")), args
}

// columnExpr is a raw expression without parameters.
type columnExpr string

// Column wraps a column name or parameterless expression.
func Column(expr string) Condition {
	return columnExpr(expr)
}

func (c columnExpr) SQL(int) (string, []any) {
	return string(c), nil
}

// translationContent selects the content of the translation in one language from a JSONB array.
type translationContent struct {
	field    string
	language string
}

// TranslationContent creates an expression yielding the content stored under language in the
// translation array field, or NULL when there is none.
func TranslationContent(field, language string) Condition {
	return &translationContent{field: field, language: language}
}

func (c *translationContent) SQL(argIndex int) (string, []any) {
	return fmt.Sprintf(
		"(SELECT t->>'content' FROM jsonb_array_elements(%s) AS t WHERE t->>'language' = $%d LIMIT 1)",
		c.field, argIndex,
	), []any{c.language}
}
