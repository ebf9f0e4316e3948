package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/service"
)

// ProductService is the catalog behavior the HTTP layer depends on.
type ProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch service.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, query repository.Query) (*service.ProductPage, error)
}

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name        []model.Translation `json:"name" binding:"required,min=1,dive"`
	Description []model.Translation `json:"description" binding:"omitempty,dive"`
	Category    []model.Translation `json:"category" binding:"omitempty,dive"`
	Price       *float64            `json:"price" binding:"required,gte=0"`
}

// UpdateProductRequest represents the whitelisted fields of an update. Other keys are ignored.
type UpdateProductRequest struct {
	Name        []model.Translation `json:"name" binding:"omitempty,min=1,dive"`
	Description []model.Translation `json:"description" binding:"omitempty,dive"`
	Category    []model.Translation `json:"category" binding:"omitempty,dive"`
	Price       *float64            `json:"price" binding:"omitempty,gte=0"`
}

// ListProductsRequest represents the query parameters for listing products.
// Values are kept as strings so that coercion errors surface as validation errors.
type ListProductsRequest struct {
	Limit     string `form:"limit"`
	Offset    string `form:"offset"`
	Input     string `form:"input"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Language  string `form:"language"`
	Category  string `form:"category"`
	// Locale is accepted for compatibility and has no effect.
	Locale string `form:"locale"`
}

// ProductResponse represents the response body for a stored product.
type ProductResponse struct {
	ID          string              `json:"id"`
	Name        []model.Translation `json:"name"`
	Description []model.Translation `json:"description"`
	Category    []model.Translation `json:"category"`
	Price       float64             `json:"price"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// LocalizedProductResponse is a product projected to one language.
type LocalizedProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// ListProductsResponse represents the response body for listing products.
type ListProductsResponse struct {
	TotalCount int64                      `json:"totalCount"`
	Language   string                     `json:"language,omitempty"`
	Products   []LocalizedProductResponse `json:"products"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		writeError(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(createdProduct))
}

// GetProduct handles the HTTP GET request for a single product.
// With a language query parameter the product is projected like in ListProducts.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get product")
		return
	}

	language := c.Query("language")
	if language == "" {
		c.JSON(http.StatusOK, toProductResponse(product))
		return
	}

	localized, err := service.Localize(product, language)
	if err != nil {
		writeError(c, err, "failed to get product")
		return
	}
	c.JSON(http.StatusOK, toLocalizedResponse(localized))
}

// UpdateProduct handles the HTTP PUT and PATCH requests for updating a product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
	}

	updated, err := pc.productService.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, toProductResponse(updated))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

// ListProducts handles the HTTP GET request for filtering, searching, sorting and paginating products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery().
		WithLanguage(req.Language).
		WithCategory(req.Category).
		WithSearch(req.Input)
	if err := query.ApplyPagination(req.Limit, req.Offset); err != nil {
		writeError(c, err, "failed to list products")
		return
	}
	if err := query.ApplySort(req.SortBy, req.SortOrder); err != nil {
		writeError(c, err, "failed to list products")
		return
	}

	page, err := pc.productService.ListProducts(c.Request.Context(), *query)
	if err != nil {
		writeError(c, err, "failed to list products")
		return
	}

	response := ListProductsResponse{
		TotalCount: page.TotalCount,
		Language:   page.Language,
		Products:   make([]LocalizedProductResponse, 0, len(page.Products)),
	}
	for _, product := range page.Products {
		response.Products = append(response.Products, toLocalizedResponse(product))
	}

	c.JSON(http.StatusOK, response)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return uuid.Nil, false
	}
	return id, true
}

func orEmpty(ts model.Translations) []model.Translation {
	if ts == nil {
		return []model.Translation{}
	}
	return ts
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        orEmpty(product.Name),
		Description: orEmpty(product.Description),
		Category:    orEmpty(product.Category),
		Price:       product.Price,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func toLocalizedResponse(product *model.LocalizedProduct) LocalizedProductResponse {
	return LocalizedProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Category:    product.Category,
	}
}
