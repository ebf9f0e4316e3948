package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

var (
	// ErrProductNotFound is returned when the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// ProjectionError is returned when a product field has translations but none in the requested language.
type ProjectionError struct {
	ProductID uuid.UUID
	Field     string
	Language  string
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("product %s has no %s translation for language %q", e.ProductID, e.Field, e.Language)
}

func (e *ProjectionError) Unwrap() error {
	return model.ErrTranslationMissing
}

func mapRepositoryError(id uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrProductNotFound, id, err)
	}
	return err
}
