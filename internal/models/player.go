package models

// Rotation values a client may report for its avatar.
const (
	RotationFront = "front"
	RotationBack  = "back"
	RotationLeft  = "left"
	RotationRight = "right"
)

// PlayerLocation is where a player stands and which interactable area, if any, holds them.
type PlayerLocation struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Rotation       string  `json:"rotation"`
	Moving         bool    `json:"moving"`
	InteractableID *string `json:"interactableID,omitempty"`
}

// Player is the wire form of a connected participant.
type Player struct {
	ID       string         `json:"id"`
	UserName string         `json:"userName"`
	Location PlayerLocation `json:"location"`
}
