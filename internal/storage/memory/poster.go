package memory

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/Vasu1712/posterboard/internal/town"
)

// PosterStore keeps poster session area snapshots in memory.
type PosterStore struct {
	mu        sync.RWMutex                                   // guards posters and townIndex
	posters   map[string]map[string]models.PosterSessionArea // townID -> areaID -> snapshot
	townIndex map[string][]string                            // townID -> areaIDs in order of first save
}

// NewPosterStore creates and returns an empty PosterStore.
func NewPosterStore() *PosterStore {
	return &PosterStore{
		posters:   make(map[string]map[string]models.PosterSessionArea),
		townIndex: make(map[string][]string),
	}
}

// SavePosterArea replaces the stored snapshot of an area.
func (s *PosterStore) SavePosterArea(_ context.Context, townID string, model models.PosterSessionArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create the town bucket on its first save
	areas, ok := s.posters[townID]
	if !ok {
		areas = make(map[string]models.PosterSessionArea)
		s.posters[townID] = areas
	}
	// Only a first save extends the order; later saves replace in place.
	if _, seen := areas[model.ID]; !seen {
		s.townIndex[townID] = append(s.townIndex[townID], model.ID)
	}
	// Store a copy so callers cannot mutate the snapshot through shared pointers
	areas[model.ID] = clone(model)

	log.Printf("[Poster] Saved area %s of town %s (stars=%d)", model.ID, townID, model.Stars)
	return nil
}

// GetPosterArea returns the stored snapshot of an area.
func (s *PosterStore) GetPosterArea(_ context.Context, townID, areaID string) (models.PosterSessionArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.posters[townID][areaID]
	if !ok {
		return models.PosterSessionArea{}, fmt.Errorf("poster area %s in town %s: %w", areaID, townID, town.ErrNotFound)
	}
	return clone(model), nil
}

// ListPosterAreas returns every stored snapshot of a town in order of first save.
func (s *PosterStore) ListPosterAreas(_ context.Context, townID string) ([]models.PosterSessionArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// An unknown town yields an empty list, not an error.
	out := make([]models.PosterSessionArea, 0, len(s.townIndex[townID]))
	for _, areaID := range s.townIndex[townID] {
		out = append(out, clone(s.posters[townID][areaID]))
	}
	return out, nil
}

// clone deep-copies the optional string fields of a snapshot.
func clone(model models.PosterSessionArea) models.PosterSessionArea {
	if model.Title != nil {
		title := *model.Title
		model.Title = &title
	}
	if model.ImageContents != nil {
		image := *model.ImageContents
		model.ImageContents = &image
	}
	return model
}
