package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry with multilingual text fields and a price.
type Product struct {
	ID          uuid.UUID
	Name        Translations
	Description Translations
	Category    Translations
	Price       float64
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Touch bumps the update timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now()
}

// Validate checks the write-time rules of a product.
func (p *Product) Validate() error {
	if p.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must be greater than or equal to 0"}
	}
	if len(p.Name) == 0 {
		return &ValidationError{Field: "name", Reason: "at least one translation is required"}
	}
	fields := []struct {
		name string
		ts   Translations
	}{
		{"name", p.Name},
		{"description", p.Description},
		{"category", p.Category},
	}
	for _, f := range fields {
		if err := f.ts.validate(f.name); err != nil {
			return err
		}
	}
	return nil
}

// LocalizedProduct is a product flattened to a single language.
type LocalizedProduct struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Price       float64
}
