package sql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "name", "description", "category", "price", "created_at", "updated_at"}

func penProduct() *model.Product {
	return &model.Product{
		Name:     model.Translations{{Language: "en", Content: "Pen"}},
		Category: model.Translations{{Language: "en", Content: "Office"}},
		Price:    1.5,
	}
}

func TestProductRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		product := penProduct()

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), product.Name, product.Description, product.Category, product.Price, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.Create(ctx, product)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, product.Name, created.Name)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check violation maps to constraint error", func(t *testing.T) {
		product := penProduct()
		product.Price = -1

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WillReturnError(&pgconn.PgError{Code: pgCheckViolationErrCode, Message: "violates check constraint"})

		created, err := repo.Create(ctx, product)
		require.Error(t, err)
		assert.Nil(t, created)

		var constraintErr *repository.ConstraintError
		require.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, pgCheckViolationErrCode, constraintErr.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("data exception maps to constraint error", func(t *testing.T) {
		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WillReturnError(&pgconn.PgError{Code: "22P05", Message: "unsupported Unicode escape sequence"})

		created, err := repo.Create(ctx, penProduct())
		require.Error(t, err)
		assert.Nil(t, created)

		var constraintErr *repository.ConstraintError
		require.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, "22P05", constraintErr.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lib/pq data exception maps to constraint error", func(t *testing.T) {
		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})

		_, err := repo.Create(ctx, penProduct())

		var constraintErr *repository.ConstraintError
		require.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, "22003", constraintErr.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other driver errors stay internal", func(t *testing.T) {
		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})

		_, err := repo.Create(ctx, penProduct())
		require.Error(t, err)

		var constraintErr *repository.ConstraintError
		assert.False(t, errors.As(err, &constraintErr))
		assert.Contains(t, err.Error(), "failed to insert product")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()
	findSQL := regexp.QuoteMeta("SELECT id, name, description, category, price, created_at, updated_at FROM products WHERE id = $1")

	t.Run("successful find", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow(id.String(), []byte(`[{"language":"en","content":"Pen"}]`), []byte(`[]`),
				[]byte(`[{"language":"en","content":"Office"}]`), 1.5, now, now)

		mock.ExpectPrepare(findSQL).
			ExpectQuery().
			WithArgs(id).
			WillReturnRows(rows)

		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, id, found.ID)
		assert.Equal(t, model.Translations{{Language: "en", Content: "Pen"}}, found.Name)
		assert.Empty(t, found.Description)
		assert.Equal(t, 1.5, found.Price)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare(findSQL).
			ExpectQuery().
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		found, err := repo.FindByID(ctx, id)
		require.Error(t, err)
		assert.Nil(t, found)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		product := penProduct()
		product.InitMeta()

		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.ID, product.Name, product.Description, product.Category, product.Price, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.Update(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, product.ID, updated.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		product := penProduct()
		product.InitMeta()

		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.Update(ctx, product)
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("count without filters", func(t *testing.T) {
		query := repository.NewQuery()

		mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		total, err := repo.Count(ctx, *query)
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count ignores pagination and sort", func(t *testing.T) {
		query := repository.NewQuery().WithLanguage("en").WithCategory("Office").WithSearch("pen")
		query.Limit = 2
		query.Offset = 4

		mock.ExpectPrepare(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM products WHERE category @> $1::jsonb AND search_vector @@ plainto_tsquery('simple', $2)")).
			ExpectQuery().
			WithArgs(`[{"content":"Office","language":"en"}]`, "pen").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		total, err := repo.Count(ctx, *query)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()
	selectPrefix := "SELECT id, name, description, category, price, created_at, updated_at FROM products"

	t.Run("list without filters", func(t *testing.T) {
		query := repository.NewQuery()

		now := time.Now()
		rows := sqlmock.NewRows(productRowColumns).
			AddRow(uuid.NewString(), []byte(`[{"language":"en","content":"A"}]`), []byte(`[]`), []byte(`[]`), 1.0, now, now).
			AddRow(uuid.NewString(), []byte(`[{"language":"en","content":"B"}]`), []byte(`[]`), []byte(`[]`), 2.0, now, now)

		mock.ExpectPrepare(regexp.QuoteMeta(selectPrefix+
			" ORDER BY name->0->>'content' ASC NULLS LAST, id ASC NULLS LAST LIMIT $1")).
			ExpectQuery().
			WithArgs(int64(10)).
			WillReturnRows(rows)

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "A", result[0].Name[0].Content)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with language, category, search and offset", func(t *testing.T) {
		query := repository.NewQuery().WithLanguage("en").WithCategory("Office").WithSearch("pen")
		require.NoError(t, query.ApplyPagination("5", "10"))

		mock.ExpectPrepare(regexp.QuoteMeta(selectPrefix+
			" WHERE category @> $1::jsonb AND search_vector @@ plainto_tsquery('simple', $2)"+
			" ORDER BY (SELECT t->>'content' FROM jsonb_array_elements(name) AS t WHERE t->>'language' = $3 LIMIT 1) ASC NULLS LAST,"+
			" id ASC NULLS LAST LIMIT $4 OFFSET $5")).
			ExpectQuery().
			WithArgs(`[{"content":"Office","language":"en"}]`, "pen", "en", int64(5), int64(10)).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		assert.Empty(t, result)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with multi word search matches any term", func(t *testing.T) {
		query := repository.NewQuery().WithSearch("red pen")

		mock.ExpectPrepare(regexp.QuoteMeta(selectPrefix+
			" WHERE search_vector @@ (plainto_tsquery('simple', $1) || plainto_tsquery('simple', $2))"+
			" ORDER BY name->0->>'content' ASC NULLS LAST, id ASC NULLS LAST LIMIT $3")).
			ExpectQuery().
			WithArgs("red", "pen", int64(10)).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		_, err := repo.List(ctx, *query)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list sorted by price descending", func(t *testing.T) {
		query := repository.NewQuery().WithCategory("Office")
		require.NoError(t, query.ApplySort("price", "desc"))

		mock.ExpectPrepare(regexp.QuoteMeta(selectPrefix+
			" WHERE category @> $1::jsonb ORDER BY price DESC NULLS LAST, id ASC NULLS LAST LIMIT $2")).
			ExpectQuery().
			WithArgs(`[{"content":"Office"}]`, int64(10)).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		_, err := repo.List(ctx, *query)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(ctx, id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
