package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/Vasu1712/posterboard/internal/town"
	"github.com/valkey-io/valkey-go"
)

// PosterStore implements town.PosterStore on valkey. Each snapshot is a JSON string at
// town:{townID}:poster:{areaID}; town:{townID}:posters is a sorted set of area ids scored
// by first save time.
type PosterStore struct {
	client valkey.Client
}

// NewPosterStore connects to the valkey server at addr.
func NewPosterStore(ctx context.Context, addr string) (*PosterStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", addr, err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey at %s: %w", addr, err)
	}

	log.Printf("[Valkey] Connected to %s for poster snapshots", addr)
	return &PosterStore{client: client}, nil
}

func posterKey(townID, areaID string) string {
	return fmt.Sprintf("town:%s:poster:%s", townID, areaID)
}

func indexKey(townID string) string {
	return fmt.Sprintf("town:%s:posters", townID)
}

// SavePosterArea replaces the stored snapshot of an area.
func (s *PosterStore) SavePosterArea(ctx context.Context, townID string, model models.PosterSessionArea) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to encode poster area %s: %w", model.ID, err)
	}

	results := s.client.DoMulti(ctx,
		s.client.B().Set().Key(posterKey(townID, model.ID)).Value(string(data)).Build(),
		s.client.B().Zadd().Key(indexKey(townID)).Nx().ScoreMember().ScoreMember(float64(time.Now().UnixNano()), model.ID).Build(),
	)
	for _, result := range results {
		if err := result.Error(); err != nil {
			return fmt.Errorf("failed to save poster area %s of town %s: %w", model.ID, townID, err)
		}
	}
	return nil
}

// GetPosterArea returns the stored snapshot of an area.
func (s *PosterStore) GetPosterArea(ctx context.Context, townID, areaID string) (models.PosterSessionArea, error) {
	raw, err := s.client.Do(ctx, s.client.B().Get().Key(posterKey(townID, areaID)).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return models.PosterSessionArea{}, fmt.Errorf("poster area %s in town %s: %w", areaID, townID, town.ErrNotFound)
	}
	if err != nil {
		return models.PosterSessionArea{}, fmt.Errorf("failed to get poster area %s of town %s: %w", areaID, townID, err)
	}
	return decode(raw)
}

// ListPosterAreas returns every stored snapshot of a town in order of first save.
func (s *PosterStore) ListPosterAreas(ctx context.Context, townID string) ([]models.PosterSessionArea, error) {
	ids, err := s.client.Do(ctx, s.client.B().Zrange().Key(indexKey(townID)).Min("0").Max("-1").Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to list poster areas of town %s: %w", townID, err)
	}
	if len(ids) == 0 {
		return []models.PosterSessionArea{}, nil
	}

	cmds := make(valkey.Commands, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, s.client.B().Get().Key(posterKey(townID, id)).Build())
	}

	out := make([]models.PosterSessionArea, 0, len(ids))
	for i, result := range s.client.DoMulti(ctx, cmds...) {
		raw, err := result.ToString()
		if valkey.IsValkeyNil(err) {
			// Index entry outlived its snapshot.
			log.Printf("[Valkey] Poster area %s of town %s is indexed but missing", ids[i], townID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get poster area %s of town %s: %w", ids[i], townID, err)
		}
		model, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, model)
	}
	return out, nil
}

// Close closes the valkey connection.
func (s *PosterStore) Close() {
	s.client.Close()
}

func decode(raw string) (models.PosterSessionArea, error) {
	var model models.PosterSessionArea
	if err := json.Unmarshal([]byte(raw), &model); err != nil {
		return models.PosterSessionArea{}, fmt.Errorf("failed to decode poster area: %w", err)
	}
	return model, nil
}
