package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/sqs"
)

// Publisher sends catalog change notifications.
type Publisher interface {
	PublishProductMessage(ctx context.Context, msg sqs.ProductMessage) error
}

// ProductPatch carries the whitelisted fields of an update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        model.Translations
	Description model.Translations
	Category    model.Translations
	Price       *float64
}

// Apply copies the present fields onto the product.
func (p ProductPatch) Apply(product *model.Product) {
	if p.Name != nil {
		product.Name = p.Name
	}
	if p.Description != nil {
		product.Description = p.Description
	}
	if p.Category != nil {
		product.Category = p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	TotalCount int64
	Language   string
	Products   []*model.LocalizedProduct
}

type ProductService struct {
	repo         repository.ProductRepository
	publisher    Publisher
	queryTimeout time.Duration
}

// NewProductService wires the catalog service. publisher may be nil to disable notifications.
// Every store call is bounded by queryTimeout when it is positive.
func NewProductService(repo repository.ProductRepository, publisher Publisher, queryTimeout time.Duration) *ProductService {
	return &ProductService{
		repo:         repo,
		publisher:    publisher,
		queryTimeout: queryTimeout,
	}
}

func (ps *ProductService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ps.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, ps.queryTimeout)
}

func (ps *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	storeCtx, cancel := ps.withTimeout(ctx)
	defer cancel()

	created, err := ps.repo.Create(storeCtx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	slog.Info("Product created", slog.String("product_id", created.ID.String()))
	ps.notify(ctx, sqs.ActionCreated, created)

	return created, nil
}

func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	storeCtx, cancel := ps.withTimeout(ctx)
	defer cancel()

	product, err := ps.repo.FindByID(storeCtx, id)
	if err != nil {
		return nil, mapRepositoryError(id, err)
	}
	return product, nil
}

func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*model.Product, error) {
	product, err := ps.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.Touch()

	storeCtx, cancel := ps.withTimeout(ctx)
	defer cancel()

	updated, err := ps.repo.Update(storeCtx, product)
	if err != nil {
		return nil, mapRepositoryError(id, err)
	}

	metrics.ProductsUpdated.Inc()
	slog.Info("Product updated", slog.String("product_id", id.String()))
	ps.notify(ctx, sqs.ActionUpdated, updated)

	return updated, nil
}

func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	// Find the product first to get its details for the message
	product, err := ps.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	storeCtx, cancel := ps.withTimeout(ctx)
	defer cancel()

	if err := ps.repo.DeleteByID(storeCtx, id); err != nil {
		return mapRepositoryError(id, err)
	}

	metrics.ProductsDeleted.Inc()
	slog.Info("Product deleted", slog.String("product_id", id.String()))
	ps.notify(ctx, sqs.ActionDeleted, product)

	return nil
}

// ListProducts counts and fetches one page of products and projects them into the query language.
// A single product that cannot be projected fails the whole listing.
func (ps *ProductService) ListProducts(ctx context.Context, query repository.Query) (*ProductPage, error) {
	metrics.ListRequests.WithLabelValues(strconv.FormatBool(query.Language != "")).Inc()

	storeCtx, cancel := ps.withTimeout(ctx)
	defer cancel()

	total, err := ps.repo.Count(storeCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	products, err := ps.repo.List(storeCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	page := &ProductPage{
		TotalCount: total,
		Language:   query.Language,
		Products:   make([]*model.LocalizedProduct, 0, len(products)),
	}
	for _, product := range products {
		localized, err := Localize(product, query.Language)
		if err != nil {
			var projErr *ProjectionError
			if errors.As(err, &projErr) {
				metrics.ProjectionFailures.WithLabelValues(projErr.Field).Inc()
			}
			return nil, err
		}
		page.Products = append(page.Products, localized)
	}

	return page, nil
}

func (ps *ProductService) notify(ctx context.Context, action sqs.Action, product *model.Product) {
	if ps.publisher == nil {
		return
	}
	if err := ps.publisher.PublishProductMessage(ctx, sqs.NewProductMessage(action, product)); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", string(action)), slog.String("product_id", product.ID.String()))
	}
}
