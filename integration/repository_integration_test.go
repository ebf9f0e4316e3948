//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	reposql "github.com/iyhunko/catalog-service/internal/repository/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tr(pairs ...string) model.Translations {
	ts := make(model.Translations, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ts = append(ts, model.Translation{Language: pairs[i], Content: pairs[i+1]})
	}
	return ts
}

func names(products []*model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name[0].Content)
	}
	return out
}

func TestProductRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	ctx := context.Background()
	productRepo := reposql.NewProductRepository(testDB.DB)

	t.Run("create and find keep translation order", func(t *testing.T) {
		testDB.TruncateTables(t)

		created, err := productRepo.Create(ctx, &model.Product{
			Name:     tr("fr", "Stylo", "en", "Pen"),
			Category: tr("en", "Office"),
			Price:    1.5,
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)

		found, err := productRepo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, tr("fr", "Stylo", "en", "Pen"), found.Name)
		assert.Empty(t, found.Description)
		assert.Equal(t, tr("en", "Office"), found.Category)
		assert.Equal(t, 1.5, found.Price)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("check constraint surfaces as ConstraintError", func(t *testing.T) {
		testDB.TruncateTables(t)

		_, err := productRepo.Create(ctx, &model.Product{Name: tr("en", "Broken"), Price: -1})

		var constraintErr *repository.ConstraintError
		require.ErrorAs(t, err, &constraintErr)
		assert.Equal(t, "23514", constraintErr.Code)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		testDB.TruncateTables(t)
		id := uuid.New()

		_, err := productRepo.FindByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = productRepo.Update(ctx, &model.Product{ID: id, Name: tr("en", "Ghost")})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.ErrorIs(t, productRepo.DeleteByID(ctx, id), repository.ErrNotFound)
	})

	t.Run("category matches exact content", func(t *testing.T) {
		testDB.TruncateTables(t)
		for _, p := range []*model.Product{
			{Name: tr("en", "Pen"), Category: tr("en", "Office", "fr", "Bureau"), Price: 1},
			{Name: tr("en", "Desk"), Category: tr("en", "Office furniture"), Price: 100},
			{Name: tr("en", "Apple"), Category: tr("en", "Food"), Price: 0.5},
		} {
			_, err := productRepo.Create(ctx, p)
			require.NoError(t, err)
		}

		q := repository.NewQuery().WithCategory("Office")
		total, err := productRepo.Count(ctx, *q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		q = repository.NewQuery().WithCategory("Bureau").WithLanguage("fr")
		products, err := productRepo.List(ctx, *q)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pen"}, names(products))

		q = repository.NewQuery().WithCategory("Bureau").WithLanguage("en")
		total, err = productRepo.Count(ctx, *q)
		require.NoError(t, err)
		assert.Zero(t, total)

		q = repository.NewQuery().WithLanguage("de")
		total, err = productRepo.Count(ctx, *q)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total, "language alone must not filter")
	})

	t.Run("translated sort puts missing translations last", func(t *testing.T) {
		testDB.TruncateTables(t)
		for _, p := range []*model.Product{
			{Name: tr("en", "Banana", "fr", "Banane"), Price: 1},
			{Name: tr("en", "Cherry"), Price: 2},
			{Name: tr("en", "Apricot", "fr", "Abricot"), Price: 3},
		} {
			_, err := productRepo.Create(ctx, p)
			require.NoError(t, err)
		}

		q := repository.NewQuery().WithLanguage("fr")
		require.NoError(t, q.ApplySort("name", "desc"))
		products, err := productRepo.List(ctx, *q)
		require.NoError(t, err)
		assert.Equal(t, []string{"Banana", "Apricot", "Cherry"}, names(products))

		q = repository.NewQuery()
		require.NoError(t, q.ApplySort("createdAt", "asc"))
		products, err = productRepo.List(ctx, *q)
		require.NoError(t, err)
		assert.Equal(t, []string{"Banana", "Cherry", "Apricot"}, names(products))
	})

	t.Run("update and delete", func(t *testing.T) {
		testDB.TruncateTables(t)
		created, err := productRepo.Create(ctx, &model.Product{Name: tr("en", "Pen"), Price: 1})
		require.NoError(t, err)

		created.Description = tr("en", "Refillable")
		created.Touch()
		_, err = productRepo.Update(ctx, created)
		require.NoError(t, err)

		q := repository.NewQuery().WithSearch("refillable")
		products, err := productRepo.List(ctx, *q)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, created.ID, products[0].ID)

		require.NoError(t, productRepo.DeleteByID(ctx, created.ID))
		total, err := productRepo.Count(ctx, *repository.NewQuery())
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}
