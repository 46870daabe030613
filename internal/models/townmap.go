package models

// TownMap is the subset of a Tiled JSON map the server reads.
type TownMap struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Layers []MapLayer `json:"layers"`
}

// MapLayer is one Tiled layer. Only object groups carry Objects.
type MapLayer struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Objects []MapObject `json:"objects,omitempty"`
}

// MapObject describes one placed object. ID is Tiled's numeric id and is not an area identity;
// Width and Height are nil when the map omits them.
type MapObject struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Class   string   `json:"class,omitempty"`
	Visible bool     `json:"visible"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}
