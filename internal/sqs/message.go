package sqs

import (
	"time"

	"github.com/iyhunko/catalog-service/internal/model"
)

// Action is the kind of catalog change a message reports.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ProductMessage represents a message about a catalog change.
type ProductMessage struct {
	Action     Action             `json:"action"`
	ProductID  string             `json:"product_id"`
	Name       model.Translations `json:"name"`
	Category   model.Translations `json:"category,omitempty"`
	Price      float64            `json:"price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewProductMessage builds a message for the given action from a product snapshot.
func NewProductMessage(action Action, product *model.Product) ProductMessage {
	return ProductMessage{
		Action:     action,
		ProductID:  product.ID.String(),
		Name:       product.Name,
		Category:   product.Category,
		Price:      product.Price,
		OccurredAt: time.Now().UTC(),
	}
}
