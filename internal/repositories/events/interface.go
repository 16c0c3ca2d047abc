package events

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/models"
)

// Repository describes persistence of published events.
type Repository interface {
	// Insert stores a new record. ID and CreatedAt must already be set.
	Insert(ctx context.Context, e *models.Event) error

	// Get returns the record or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Event, error)

	// Replace overwrites an existing record; common.ErrNotFound when absent.
	Replace(ctx context.Context, e *models.Event) error

	// Delete removes the record. A missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every record in no particular order.
	List(ctx context.Context) ([]models.Event, error)
}
