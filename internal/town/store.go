package town

import (
	"context"

	"github.com/Vasu1712/posterboard/internal/models"
)

// PosterStore keeps the last broadcast snapshot of each poster session area.
type PosterStore interface {
	SavePosterArea(ctx context.Context, townID string, model models.PosterSessionArea) error
	// GetPosterArea returns an error wrapping ErrNotFound when nothing was saved for areaID.
	GetPosterArea(ctx context.Context, townID, areaID string) (models.PosterSessionArea, error)
	ListPosterAreas(ctx context.Context, townID string) ([]models.PosterSessionArea, error)
}
