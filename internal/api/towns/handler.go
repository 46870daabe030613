package towns

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/Vasu1712/posterboard/internal/town"
	"github.com/Vasu1712/posterboard/internal/ws"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Client events accepted over the socket.
const (
	clientEventPlayerMovement     = "playerMovement"
	clientEventInteractableUpdate = "interactableUpdate"
)

// TownHandler serves one town over HTTP and websockets.
type TownHandler struct {
	Town  *town.Town
	Hub   *ws.Hub
	Store town.PosterStore // snapshots saved by the town; may be nil
}

// JoinTown handles POST requests creating a player. It expects {"userName": "..."}.
func (h *TownHandler) JoinTown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[HTTP] Error decoding request body for JoinTown: %v", err)
		return
	}
	if req.UserName == "" {
		http.Error(w, "User name cannot be empty", http.StatusBadRequest)
		return
	}

	player := h.Town.AddPlayer(req.UserName)
	writeJSON(w, http.StatusCreated, player.ToModel())
}

// LeaveTown removes a player, taking them out of any area first.
func (h *TownHandler) LeaveTown(w http.ResponseWriter, r *http.Request) {
	if err := h.Town.RemovePlayer(r.Context(), mux.Vars(r)["playerID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlayers returns every player in the town in join order.
func (h *TownHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Town.Players())
}

// MovePlayer handles PUT requests carrying a player's new location.
func (h *TownHandler) MovePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]
	var loc models.PlayerLocation
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[HTTP] Error decoding request body for MovePlayer: %v", err)
		return
	}
	// The town moves the player between areas when the interactable changes.
	if err := h.Town.UpdatePlayerLocation(r.Context(), playerID, loc); err != nil {
		writeError(w, err)
		return
	}
	// Respond with the player's state after the move
	player, err := h.Town.Player(playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// ListInteractables returns the snapshot of every poster session area in map order.
func (h *TownHandler) ListInteractables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Town.Areas())
}

// GetInteractable returns the snapshot of the area named in the path.
func (h *TownHandler) GetInteractable(w http.ResponseWriter, r *http.Request) {
	area, err := h.Town.Area(mux.Vars(r)["areaID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

// GetOccupants returns the ids of the players inside an area, in arrival order.
func (h *TownHandler) GetOccupants(w http.ResponseWriter, r *http.Request) {
	occupants, err := h.Town.Occupants(mux.Vars(r)["areaID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, occupants)
}

// UpdateInteractable syncs an area to the posted snapshot. The id in the path wins over the body.
func (h *TownHandler) UpdateInteractable(w http.ResponseWriter, r *http.Request) {
	model, ok := decodePosterArea(w, r)
	if !ok {
		return
	}
	model.ID = mux.Vars(r)["areaID"]
	if err := h.Town.ApplyInteractableUpdate(r.Context(), model); err != nil {
		writeError(w, err)
		return
	}
	h.GetInteractable(w, r)
}

// CreatePoster puts up a poster. It expects {"id", "title", "imageContents"}.
func (h *TownHandler) CreatePoster(w http.ResponseWriter, r *http.Request) {
	model, ok := decodePosterArea(w, r)
	if !ok {
		return
	}
	if err := h.Town.CreatePoster(r.Context(), model); err != nil {
		writeError(w, err)
		return
	}
	area, err := h.Town.Area(model.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// GetPosterImage returns the image contents of the poster shown in an area.
func (h *TownHandler) GetPosterImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.Town.PosterImageContents(mux.Vars(r)["areaID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageContents": image})
}

// StarPoster adds a star to the poster shown in an area and returns the new count.
func (h *TownHandler) StarPoster(w http.ResponseWriter, r *http.Request) {
	stars, err := h.Town.IncrementPosterStars(r.Context(), mux.Vars(r)["areaID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stars": stars})
}

// PosterHistory returns the last snapshot saved for each area.
func (h *TownHandler) PosterHistory(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, []models.PosterSessionArea{})
		return
	}
	history, err := h.Store.ListPosterAreas(r.Context(), h.Town.ID())
	if err != nil {
		log.Printf("[HTTP] Error listing poster history for town %s: %v", h.Town.ID(), err)
		http.Error(w, "Failed to list poster history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS attaches a socket to an existing player. The player leaves the town when it closes.
func (h *TownHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		http.Error(w, "Player ID is required for WebSocket connection", http.StatusBadRequest)
		return
	}
	if _, err := h.Town.Player(playerID); err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HTTP] Failed to upgrade WebSocket for player %s: %v", playerID, err)
		return
	}

	client := &ws.Client{
		PlayerID: playerID,
		TownID:   h.Town.ID(),
		Send:     make(chan []byte, 256),
		Conn:     conn,
	}
	h.Hub.Register <- client

	// The request context ends when ServeWS returns; the pumps outlive it.
	ctx := context.WithoutCancel(r.Context())

	// Read pump
	go func() {
		defer func() {
			h.Hub.Unregister <- client
			conn.Close()
			if err := h.Town.RemovePlayer(ctx, playerID); err != nil && !town.IsNotFound(err) {
				log.Printf("[HTTP] Error removing player %s after disconnect: %v", playerID, err)
			}
		}()
		for {
			var evt models.ClientEvent
			if err := conn.ReadJSON(&evt); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[HTTP] WebSocket read error for player %s: %v", playerID, err)
				}
				return
			}
			h.handleClientEvent(ctx, playerID, evt)
		}
	}()

	// Write pump
	go func() {
		defer conn.Close()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[HTTP] WebSocket write error for player %s: %v", playerID, err)
				return
			}
		}
	}()
}

// handleClientEvent routes one socket message to the town. Failures are logged, never sent back.
func (h *TownHandler) handleClientEvent(ctx context.Context, playerID string, evt models.ClientEvent) {
	var err error
	switch evt.Event {
	case clientEventPlayerMovement:
		var loc models.PlayerLocation
		if err = json.Unmarshal(evt.Payload, &loc); err == nil {
			err = h.Town.UpdatePlayerLocation(ctx, playerID, loc)
		}
	case clientEventInteractableUpdate:
		var model models.PosterSessionArea
		if err = json.Unmarshal(evt.Payload, &model); err == nil {
			err = h.Town.ApplyInteractableUpdate(ctx, model)
		}
	default:
		log.Printf("[HTTP] Ignoring unknown event %q from player %s", evt.Event, playerID)
		return
	}
	if err != nil {
		log.Printf("[HTTP] Error handling %s from player %s: %v", evt.Event, playerID, err)
	}
}

// decodePosterArea reads a poster session area from the body, answering 400 when it cannot.
func decodePosterArea(w http.ResponseWriter, r *http.Request) (models.PosterSessionArea, bool) {
	var model models.PosterSessionArea
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("[HTTP] Error decoding poster session area: %v", err)
		return models.PosterSessionArea{}, false
	}
	return model, true
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Error encoding response: %v", err)
	}
}

// writeError maps town errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case town.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case town.IsInvalidParameters(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
