package town

// Event names broadcast to everyone in a town.
const (
	EventInteractableUpdate = "interactableUpdate"
	EventPlayerMoved        = "playerMoved"
	EventPlayerJoined       = "playerJoined"
	EventPlayerDisconnect   = "playerDisconnect"
)

// Emitter is the town-wide broadcast sink. One instance is shared by every area and
// player of a town; holders never own or close it.
type Emitter interface {
	Emit(event string, payload any)
}
