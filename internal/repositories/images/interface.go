package images

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/models"
)

type Repository interface {
	// Keyspace reports which collection this repository serves.
	Keyspace() models.Keyspace
	// Insert stores a new record. The checksum is computed when empty.
	Insert(ctx context.Context, rec *models.ImageRecord) error
	// Get returns the record or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.ImageRecord, error)
	// Exists reports whether a record is stored without loading its payload.
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes the record; a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}
