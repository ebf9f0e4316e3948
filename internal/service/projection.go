package service

import (
	"github.com/iyhunko/catalog-service/internal/model"
)

// Localize flattens the translated fields of a product to single strings.
// Without a language each field takes its first translation. With a language, a field that has
// translations but none in that language yields a *ProjectionError. Empty fields become "".
func Localize(product *model.Product, language string) (*model.LocalizedProduct, error) {
	name, err := project(product, "name", product.Name, language)
	if err != nil {
		return nil, err
	}
	description, err := project(product, "description", product.Description, language)
	if err != nil {
		return nil, err
	}
	category, err := project(product, "category", product.Category, language)
	if err != nil {
		return nil, err
	}

	return &model.LocalizedProduct{
		ID:          product.ID,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       product.Price,
	}, nil
}

func project(product *model.Product, field string, ts model.Translations, language string) (string, error) {
	if len(ts) == 0 {
		return "", nil
	}
	if language == "" {
		return ts[0].Content, nil
	}
	content, ok := ts.Lookup(language)
	if !ok {
		return "", &ProjectionError{ProductID: product.ID, Field: field, Language: language}
	}
	return content, nil
}
