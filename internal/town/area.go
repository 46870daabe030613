package town

import "github.com/Vasu1712/posterboard/internal/models"

// Occupant is what an area needs from a participant entering or leaving it.
type Occupant interface {
	ID() string
	SetInteractableID(id string)
	ClearInteractableID()
	NotifyLocationChange()
}

// Poster is the artifact state of a poster session area. An area with no title, no image
// and zero stars holds no Poster. Stars set without a title or image are kept as given.
type Poster struct {
	Title         *string
	ImageContents *string
	Stars         int
}

// posterFromModel returns nil for a model carrying no poster state at all.
func posterFromModel(model models.PosterSessionArea) *Poster {
	if model.Title == nil && model.ImageContents == nil && model.Stars == 0 {
		return nil
	}
	return &Poster{
		Title:         cloneString(model.Title),
		ImageContents: cloneString(model.ImageContents),
		Stars:         model.Stars,
	}
}

// PosterSessionArea is a rectangular zone of a town that displays a poster to the players inside.
// It does no locking; the owning Town serializes every call.
type PosterSessionArea struct {
	id            string
	boundingBox   models.BoundingBox
	occupantsByID []string
	poster        *Poster
	emitter       Emitter
}

// NewPosterSessionArea creates an area with an empty roster showing the poster described by model.
func NewPosterSessionArea(model models.PosterSessionArea, box models.BoundingBox, emitter Emitter) *PosterSessionArea {
	return &PosterSessionArea{
		id:            model.ID,
		boundingBox:   box,
		occupantsByID: []string{},
		poster:        posterFromModel(model),
		emitter:       emitter,
	}
}

// FromMapObject creates an empty area from a map object, named after the object.
func FromMapObject(obj models.MapObject, emitter Emitter) (*PosterSessionArea, error) {
	if obj.Width == nil || obj.Height == nil {
		return nil, NewInvalidParametersError("malformed poster session area %q: missing width or height", obj.Name)
	}
	box := models.BoundingBox{X: obj.X, Y: obj.Y, Width: *obj.Width, Height: *obj.Height}
	return NewPosterSessionArea(models.PosterSessionArea{ID: obj.Name}, box, emitter), nil
}

// ID returns the area id, fixed at construction.
func (a *PosterSessionArea) ID() string { return a.id }

// BoundingBox returns the area rectangle in town coordinates.
func (a *PosterSessionArea) BoundingBox() models.BoundingBox { return a.boundingBox }

// OccupantsByID returns the ids of the players inside, in arrival order.
func (a *PosterSessionArea) OccupantsByID() []string {
	return append([]string{}, a.occupantsByID...)
}

// Displayed reports whether a title or image is up.
func (a *PosterSessionArea) Displayed() bool {
	return a.poster != nil && (a.poster.Title != nil || a.poster.ImageContents != nil)
}

// IsActive reports whether anyone is inside.
func (a *PosterSessionArea) IsActive() bool {
	return len(a.occupantsByID) > 0
}

// Title returns the poster title, or nil when none is set.
func (a *PosterSessionArea) Title() *string {
	if a.poster == nil {
		return nil
	}
	return cloneString(a.poster.Title)
}

// ImageContents returns the poster image, or nil when none is set.
func (a *PosterSessionArea) ImageContents() *string {
	if a.poster == nil {
		return nil
	}
	return cloneString(a.poster.ImageContents)
}

// Stars returns the poster rating; 0 when the area holds no poster state.
func (a *PosterSessionArea) Stars() int {
	if a.poster == nil {
		return 0
	}
	return a.poster.Stars
}

// Poster returns the area's artifact state, if any.
func (a *PosterSessionArea) Poster() (Poster, bool) {
	if a.poster == nil {
		return Poster{}, false
	}
	return Poster{
		Title:         cloneString(a.poster.Title),
		ImageContents: cloneString(a.poster.ImageContents),
		Stars:         a.poster.Stars,
	}, true
}

// Add records o as inside the area. The caller guarantees o is not already inside.
func (a *PosterSessionArea) Add(o Occupant) {
	a.occupantsByID = append(a.occupantsByID, o.ID())
	o.SetInteractableID(a.id)
	o.NotifyLocationChange()
}

// Remove takes o out of the area and broadcasts the area's state. The poster is taken
// down when the last occupant leaves. The caller guarantees o is inside.
func (a *PosterSessionArea) Remove(o Occupant) {
	for i, id := range a.occupantsByID {
		if id == o.ID() {
			a.occupantsByID = append(a.occupantsByID[:i], a.occupantsByID[i+1:]...)
			break
		}
	}
	// The occupant announces its own move.
	o.ClearInteractableID()
	o.NotifyLocationChange()
	// Unattended posters come down.
	if len(a.occupantsByID) == 0 {
		a.poster = nil
	}
	a.emitter.Emit(EventInteractableUpdate, a.ToModel())
}

// ToModel returns the area's current artifact snapshot.
func (a *PosterSessionArea) ToModel() models.PosterSessionArea {
	return models.PosterSessionArea{
		ID:            a.id,
		Stars:         a.Stars(),
		Title:         a.Title(),
		ImageContents: a.ImageContents(),
	}
}

// UpdateModel adopts stars, title and image from model exactly. The area keeps its own id
// and emits nothing.
func (a *PosterSessionArea) UpdateModel(model models.PosterSessionArea) {
	a.poster = posterFromModel(model)
}

// cloneString copies s so callers never share the area's strings.
func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
