package models

// BoundingBox is a rectangle in town coordinates.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PosterSessionArea is the wire and persistence form of a poster session area.
// Title and ImageContents are nil while no poster is displayed.
type PosterSessionArea struct {
	ID            string  `json:"id"`
	Stars         int     `json:"stars"`
	Title         *string `json:"title,omitempty"`
	ImageContents *string `json:"imageContents,omitempty"`
}
