package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/service"
)

// writeError maps domain errors to HTTP statuses. Unexpected errors are logged and hidden behind fallback.
func writeError(c *gin.Context, err error, fallback string) {
	var (
		validationErr *model.ValidationError
		constraintErr *repository.ConstraintError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, repository.ErrInvalidPagination), errors.Is(err, repository.ErrInvalidSort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &constraintErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": constraintErr.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		slog.Error(fallback, slog.Any("err", err), slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
