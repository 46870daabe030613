package models

import "encoding/json"

// ServerEvent is the envelope pushed to every socket in a town.
type ServerEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// ClientEvent is the envelope a socket sends to the server. Payload is decoded
// once Event is known.
type ClientEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}
