package town

import (
	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/google/uuid"
)

// Player is a participant connected to a town.
type Player struct {
	id       string
	userName string
	location models.PlayerLocation
	emitter  Emitter
}

// NewPlayer creates a player standing at the origin, outside every area.
func NewPlayer(userName string, emitter Emitter) *Player {
	return &Player{
		id:       uuid.NewString(),
		userName: userName,
		location: models.PlayerLocation{Rotation: models.RotationFront},
		emitter:  emitter,
	}
}

// ID returns the player's uuid.
func (p *Player) ID() string { return p.id }

// UserName returns the name the player joined with.
func (p *Player) UserName() string { return p.userName }

// Location returns a copy of the player's location record.
func (p *Player) Location() models.PlayerLocation {
	loc := p.location
	if loc.InteractableID != nil {
		id := *loc.InteractableID
		loc.InteractableID = &id
	}
	return loc
}

// SetLocation replaces position, rotation and movement. The interactable reference is
// left alone; only areas change it.
func (p *Player) SetLocation(loc models.PlayerLocation) {
	interactableID := p.location.InteractableID
	p.location = loc
	p.location.InteractableID = interactableID
}

// InteractableID returns the id of the area holding the player, or "" when none does.
func (p *Player) InteractableID() string {
	if p.location.InteractableID == nil {
		return ""
	}
	return *p.location.InteractableID
}

// SetInteractableID records that the area with id holds the player.
func (p *Player) SetInteractableID(id string) {
	p.location.InteractableID = &id
}

// ClearInteractableID records that no area holds the player.
func (p *Player) ClearInteractableID() {
	p.location.InteractableID = nil
}

// NotifyLocationChange broadcasts the player's current state as a playerMoved event.
func (p *Player) NotifyLocationChange() {
	p.emitter.Emit(EventPlayerMoved, p.ToModel())
}

// ToModel returns the wire form of the player.
func (p *Player) ToModel() models.Player {
	return models.Player{
		ID:       p.id,
		UserName: p.userName,
		Location: p.Location(),
	}
}
