package town

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Vasu1712/posterboard/internal/models"
)

const (
	objectLayerType       = "objectgroup"
	posterSessionAreaType = "PosterSessionArea"
)

// LoadMap decodes a Tiled JSON map.
func LoadMap(r io.Reader) (models.TownMap, error) {
	var m models.TownMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return models.TownMap{}, fmt.Errorf("failed to decode town map: %w", err)
	}
	return m, nil
}

// LoadMapFile reads and decodes the Tiled JSON map at path.
func LoadMapFile(path string) (models.TownMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.TownMap{}, fmt.Errorf("failed to open town map %s: %w", path, err)
	}
	defer f.Close()
	return LoadMap(f)
}

// posterSessionObjects returns the map objects describing poster session areas, in map order.
func posterSessionObjects(m models.TownMap) []models.MapObject {
	var objects []models.MapObject
	for _, layer := range m.Layers {
		if layer.Type != objectLayerType {
			continue
		}
		for _, obj := range layer.Objects {
			// Tiled 1.9 renamed "type" to "class".
			if obj.Type == posterSessionAreaType || obj.Class == posterSessionAreaType {
				objects = append(objects, obj)
			}
		}
	}
	return objects
}
