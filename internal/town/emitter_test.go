package town

import "github.com/Vasu1712/posterboard/internal/models"

type emittedEvent struct {
	name    string
	payload any
}

// recordingEmitter keeps every event in emission order.
type recordingEmitter struct {
	events []emittedEvent
}

func (r *recordingEmitter) Emit(event string, payload any) {
	r.events = append(r.events, emittedEvent{name: event, payload: payload})
}

func (r *recordingEmitter) clear() {
	r.events = nil
}

func (r *recordingEmitter) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

func (r *recordingEmitter) last(name string) (any, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].name == name {
			return r.events[i].payload, true
		}
	}
	return nil, false
}

func (r *recordingEmitter) lastInteractableUpdate() (models.PosterSessionArea, bool) {
	payload, ok := r.last(EventInteractableUpdate)
	if !ok {
		return models.PosterSessionArea{}, false
	}
	model, ok := payload.(models.PosterSessionArea)
	return model, ok
}

func (r *recordingEmitter) lastPlayerMoved() (models.Player, bool) {
	payload, ok := r.last(EventPlayerMoved)
	if !ok {
		return models.Player{}, false
	}
	player, ok := payload.(models.Player)
	return player, ok
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
