package ports

import (
	"context"

	"github.com/sopdesk/sopdesk/internal/models"
)

type SopRepository interface {
	// List returns one window of records sorted newest first, plus the
	// exact total row count of the collection.
	List(ctx context.Context, offset, limit int) ([]models.Record, int, error)

	// GetByID returns the record matching id, or (nil, nil) when no row
	// matches.
	GetByID(ctx context.Context, id string) (models.Record, error)
}
