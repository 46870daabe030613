package town

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Vasu1712/posterboard/internal/models"
)

// Town owns the players and poster session areas of one map and serializes every
// change to them. It is the only caller of the areas' Add, Remove and UpdateModel.
type Town struct {
	mu        sync.Mutex
	id        string
	emitter   Emitter
	store     PosterStore
	players   map[string]*Player
	joinOrder []string
	areas     map[string]*PosterSessionArea
	areaOrder []string
}

// New creates an empty town. store may be nil, in which case snapshots are not persisted.
func New(id string, emitter Emitter, store PosterStore) *Town {
	return &Town{
		id:      id,
		emitter: emitter,
		store:   store,
		players: make(map[string]*Player),
		areas:   make(map[string]*PosterSessionArea),
	}
}

func (t *Town) ID() string { return t.id }

// InitializeFromMap creates a poster session area for every poster object on the map.
// The first malformed object aborts the load.
func (t *Town) InitializeFromMap(m models.TownMap) error {
	objects := posterSessionObjects(m)
	for _, obj := range objects {
		area, err := FromMapObject(obj, t.emitter)
		if err != nil {
			return fmt.Errorf("failed to load map object %d: %w", obj.ID, err)
		}
		if err := t.AddArea(area); err != nil {
			return err
		}
	}
	log.Printf("[Town] %s initialized with %d poster session areas", t.id, len(objects))
	return nil
}

// AddArea registers an area. Area ids are unique within a town.
func (t *Town) AddArea(area *PosterSessionArea) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.areas[area.ID()]; ok {
		return NewInvalidParametersError("duplicate interactable id %q", area.ID())
	}
	t.areas[area.ID()] = area
	t.areaOrder = append(t.areaOrder, area.ID())
	return nil
}

// AddPlayer creates a player in this town and announces it.
func (t *Town) AddPlayer(userName string) *Player {
	t.mu.Lock()
	defer t.mu.Unlock()

	player := NewPlayer(userName, t.emitter)
	t.players[player.ID()] = player
	t.joinOrder = append(t.joinOrder, player.ID())
	t.emitter.Emit(EventPlayerJoined, player.ToModel())

	log.Printf("[Town] Player %s (%s) joined town %s", player.ID(), userName, t.id)
	return player
}

// RemovePlayer takes a player out of its area, if any, and out of the town.
func (t *Town) RemovePlayer(ctx context.Context, playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.player(playerID)
	if err != nil {
		return err
	}
	// Leave the area first so its occupants and poster reflect the departure.
	if area, ok := t.areas[player.InteractableID()]; ok {
		area.Remove(player)
		t.persist(ctx, area)
	}
	delete(t.players, playerID)
	for i, id := range t.joinOrder {
		if id == playerID {
			t.joinOrder = append(t.joinOrder[:i], t.joinOrder[i+1:]...)
			break
		}
	}
	t.emitter.Emit(EventPlayerDisconnect, player.ToModel())

	log.Printf("[Town] Player %s left town %s", playerID, t.id)
	return nil
}

// UpdatePlayerLocation moves a player. When loc names a different interactable than the one
// holding the player, the player leaves the old area before entering the new one, so no player
// is ever inside two areas.
func (t *Town) UpdatePlayerLocation(ctx context.Context, playerID string, loc models.PlayerLocation) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.player(playerID)
	if err != nil {
		return err
	}

	var next *PosterSessionArea
	if loc.InteractableID != nil && *loc.InteractableID != "" {
		area, ok := t.areas[*loc.InteractableID]
		if !ok {
			return NewInvalidParametersError("unknown interactable %q", *loc.InteractableID)
		}
		next = area
	}

	// SetLocation leaves the interactable id to the area transitions below.
	player.SetLocation(loc)

	prevID := player.InteractableID()
	nextID := ""
	if next != nil {
		nextID = next.ID()
	}
	// Same area (or still none): only the coordinates changed.
	if prevID == nextID {
		player.NotifyLocationChange()
		return nil
	}

	// Remove and Add each announce the player's location.
	if prev, ok := t.areas[prevID]; ok {
		prev.Remove(player)
		t.persist(ctx, prev)
	}
	if next != nil {
		next.Add(player)
	}
	return nil
}

// ApplyInteractableUpdate syncs an area to a client-supplied snapshot and broadcasts the result.
func (t *Town) ApplyInteractableUpdate(ctx context.Context, model models.PosterSessionArea) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(model.ID)
	if err != nil {
		return err
	}
	area.UpdateModel(model)
	t.broadcast(ctx, area)
	return nil
}

// CreatePoster puts up a poster in an occupied area that is not showing one yet.
func (t *Town) CreatePoster(ctx context.Context, model models.PosterSessionArea) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(model.ID)
	if err != nil {
		return err
	}
	if model.Title == nil || *model.Title == "" || model.ImageContents == nil || *model.ImageContents == "" {
		return NewInvalidParametersError("a poster needs a title and image contents")
	}
	// Stars alone do not count as a poster being up.
	if area.Displayed() {
		return NewInvalidParametersError("interactable %q already displays a poster", area.ID())
	}
	if !area.IsActive() {
		return NewInvalidParametersError("interactable %q has no occupants", area.ID())
	}
	area.UpdateModel(model)
	t.broadcast(ctx, area)

	log.Printf("[Poster] Area %s now displays %q", area.ID(), *model.Title)
	return nil
}

// PosterImageContents returns the image shown in an area.
func (t *Town) PosterImageContents(areaID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(areaID)
	if err != nil {
		return "", err
	}
	image := area.ImageContents()
	if image == nil {
		return "", NewInvalidParametersError("interactable %q has no poster image", areaID)
	}
	return *image, nil
}

// IncrementPosterStars adds a star to the poster shown in an area and returns the new count.
func (t *Town) IncrementPosterStars(ctx context.Context, areaID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(areaID)
	if err != nil {
		return 0, err
	}
	if !area.Displayed() {
		return 0, NewInvalidParametersError("interactable %q has no poster", areaID)
	}
	// Round-trip through the model so the update path stays single.
	model := area.ToModel()
	model.Stars++
	area.UpdateModel(model)
	t.broadcast(ctx, area)
	return area.Stars(), nil
}

// Areas returns a snapshot of every area in map order.
func (t *Town) Areas() []models.PosterSessionArea {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.PosterSessionArea, 0, len(t.areaOrder))
	for _, id := range t.areaOrder {
		out = append(out, t.areas[id].ToModel())
	}
	return out
}

// Area returns the snapshot of one area.
func (t *Town) Area(areaID string) (models.PosterSessionArea, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(areaID)
	if err != nil {
		return models.PosterSessionArea{}, err
	}
	return area.ToModel(), nil
}

// Occupants returns the ids of the players inside an area, in arrival order.
func (t *Town) Occupants(areaID string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.area(areaID)
	if err != nil {
		return nil, err
	}
	return area.OccupantsByID(), nil
}

// Players returns every player in join order.
func (t *Town) Players() []models.Player {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Player, 0, len(t.joinOrder))
	for _, id := range t.joinOrder {
		out = append(out, t.players[id].ToModel())
	}
	return out
}

// Player returns one player.
func (t *Town) Player(playerID string) (models.Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.player(playerID)
	if err != nil {
		return models.Player{}, err
	}
	return player.ToModel(), nil
}

// player looks up a player; callers hold t.mu.
func (t *Town) player(id string) (*Player, error) {
	player, ok := t.players[id]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return player, nil
}

// area looks up an area; callers hold t.mu.
func (t *Town) area(id string) (*PosterSessionArea, error) {
	area, ok := t.areas[id]
	if !ok {
		return nil, fmt.Errorf("interactable %s: %w", id, ErrNotFound)
	}
	return area, nil
}

// broadcast announces the area's snapshot to the town, then persists it.
func (t *Town) broadcast(ctx context.Context, area *PosterSessionArea) {
	t.emitter.Emit(EventInteractableUpdate, area.ToModel())
	t.persist(ctx, area)
}

// persist saves the area's snapshot. Failures are logged; the in-memory town stays authoritative.
func (t *Town) persist(ctx context.Context, area *PosterSessionArea) {
	if t.store == nil {
		return
	}
	if err := t.store.SavePosterArea(ctx, t.id, area.ToModel()); err != nil {
		log.Printf("[Town] Error saving poster area %s of town %s: %v", area.ID(), t.id, err)
	}
}
