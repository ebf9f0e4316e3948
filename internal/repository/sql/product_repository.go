package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/pkg/query"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolationErrCode = "23505" // PostgreSQL unique violation error code. See https://www.postgresql.org/docs/16/errcodes-appendix.html
	pgCheckViolationErrCode  = "23514"
	pgDataExceptionClass     = "22" // invalid input such as untranslatable characters or out of range values

	productsTable    = "products"
	productColumns   = "id, name, description, category, price, created_at, updated_at"
	searchVector     = "search_vector"
	textSearchConfig = "simple"
)

var sortColumns = map[repository.SortField]string{
	repository.SortByName:        "name",
	repository.SortByDescription: "description",
	repository.SortByCategory:    "category",
	repository.SortByPrice:       "price",
	repository.SortByCreatedAt:   "created_at",
}

// ProductRepository stores products in PostgreSQL with translations in JSONB columns.
type ProductRepository struct {
	db dbExecutor
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	// Only initialize metadata if not already set
	if product.ID == uuid.Nil {
		product.InitMeta()
	}

	insertSQL := `INSERT INTO products (id, name, description, category, price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := r.db.PrepareContext(ctx, insertSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, product.ID, product.Name, product.Description, product.Category,
		product.Price, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("failed to insert product", err)
	}

	return product, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	selectSQL := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	product, err := scanProduct(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return product, nil
}

// Update saves the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	updateSQL := `UPDATE products SET name = $2, description = $3, category = $4, price = $5, updated_at = $6
	          WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, updateSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, product.ID, product.Name, product.Description, product.Category,
		product.Price, product.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("failed to update product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, product.ID)
	}

	return product, nil
}

// DeleteByID deletes a product by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	deleteSQL := `DELETE FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, deleteSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}

	return nil
}

// Count returns the number of products matching the query filters.
func (r *ProductRepository) Count(ctx context.Context, q repository.Query) (int64, error) {
	base, err := filteredQuery(q)
	if err != nil {
		return 0, err
	}
	statement := base.Count().Build()

	stmt, err := r.db.PrepareContext(ctx, statement.SQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare count statement: %w", err)
	}
	defer stmt.Close()

	var total int64
	if err := stmt.QueryRowContext(ctx, statement.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// List retrieves one sorted page of products matching the query filters.
func (r *ProductRepository) List(ctx context.Context, q repository.Query) ([]*model.Product, error) {
	base, err := filteredQuery(q)
	if err != nil {
		return nil, err
	}

	direction := query.Asc
	if q.SortOrder == repository.Descending {
		direction = query.Desc
	}
	limit := q.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}

	statement := base.
		OrderBy(sortExpression(q), direction).
		OrderBy(query.Column("id"), query.Asc).
		Limit(int64(limit)).
		Offset(int64(q.Offset)).
		Build()

	stmt, err := r.db.PrepareContext(ctx, statement.SQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, statement.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// filteredQuery builds the SELECT shared by Count and List.
// The language only narrows the category match; on its own it does not exclude products.
func filteredQuery(q repository.Query) (*query.Builder, error) {
	b := query.From(productsTable).Select(productColumns)

	if q.Category != "" {
		match := map[string]string{"content": q.Category}
		if q.Language != "" {
			match["language"] = q.Language
		}
		doc, err := json.Marshal([]map[string]string{match})
		if err != nil {
			return nil, fmt.Errorf("failed to build category filter: %w", err)
		}
		b = b.Where(query.JSONContains("category", string(doc)))
	}

	if q.Search != "" {
		b = b.Where(query.TextSearch(searchVector, textSearchConfig, q.Search))
	}

	return b, nil
}

func sortExpression(q repository.Query) query.Condition {
	field := q.SortBy
	if _, ok := sortColumns[field]; !ok {
		field = repository.SortByName
	}
	column := sortColumns[field]
	if !field.IsTranslated() {
		return query.Column(column)
	}
	if q.Language != "" {
		return query.TranslationContent(column, q.Language)
	}
	return query.Column(column + "->0->>'content'")
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var product model.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Price, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func mapWriteError(msg string, err error) error {
	code, detail := "", ""
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code, detail = pgErr.Code, pgErr.Message
	case errors.As(err, &pqErr):
		code, detail = string(pqErr.Code), pqErr.Message
	}
	if code == pgUniqueViolationErrCode || code == pgCheckViolationErrCode || strings.HasPrefix(code, pgDataExceptionClass) {
		return &repository.ConstraintError{Code: code, Detail: detail}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
