package towns

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/Vasu1712/posterboard/internal/storage/memory"
	"github.com/Vasu1712/posterboard/internal/town"
	"github.com/Vasu1712/posterboard/internal/ws"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	router *mux.Router
	town   *town.Town
	hub    *ws.Hub
}

func newServer(t *testing.T) *server {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()

	store := memory.NewPosterStore()
	tw := town.New("test-town", hub.Emitter("test-town"), store)
	for _, id := range []string{"Poster1", "Poster2"} {
		area := town.NewPosterSessionArea(models.PosterSessionArea{ID: id}, models.BoundingBox{Width: 10, Height: 10}, hub.Emitter("test-town"))
		require.NoError(t, tw.AddArea(area))
	}

	router := mux.NewRouter()
	RegisterTownRoutes(router, &TownHandler{Town: tw, Hub: hub, Store: store})
	return &server{router: router, town: tw, hub: hub}
}

func (s *server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func (s *server) join(t *testing.T, name string) models.Player {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/players", map[string]string{"userName": name})
	require.Equal(t, http.StatusCreated, rec.Code)
	var player models.Player
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&player))
	return player
}

func strPtr(s string) *string { return &s }

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestJoinTown(t *testing.T) {
	s := newServer(t)

	player := s.join(t, "alice")
	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "alice", player.UserName)

	rec := s.do(t, http.MethodPost, "/api/v1/players", map[string]string{"userName": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Player](t, rec), 1)
}

func TestPosterLifecycle(t *testing.T) {
	s := newServer(t)
	alice := s.join(t, "alice")

	rec := s.do(t, http.MethodPut, "/api/v1/players/"+alice.ID+"/location", models.PlayerLocation{X: 1, Y: 2, InteractableID: strPtr("Poster1")})
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decode[models.Player](t, rec)
	require.NotNil(t, moved.Location.InteractableID)
	assert.Equal(t, "Poster1", *moved.Location.InteractableID)

	rec = s.do(t, http.MethodPost, "/api/v1/posters", models.PosterSessionArea{ID: "Poster1", Title: strPtr("Go"), ImageContents: strPtr("gopher.png")})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/posters/Poster1/stars", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"stars": 1}, decode[map[string]int](t, rec))

	rec = s.do(t, http.MethodGet, "/api/v1/posters/Poster1/image", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gopher.png", decode[map[string]string](t, rec)["imageContents"])

	rec = s.do(t, http.MethodGet, "/api/v1/interactables/Poster1/occupants", nil)
	assert.Equal(t, []string{alice.ID}, decode[[]string](t, rec))

	rec = s.do(t, http.MethodDelete, "/api/v1/players/"+alice.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/interactables/Poster1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PosterSessionArea{ID: "Poster1"}, decode[models.PosterSessionArea](t, rec))

	rec = s.do(t, http.MethodGet, "/api/v1/posters/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []models.PosterSessionArea{{ID: "Poster1"}}, decode[[]models.PosterSessionArea](t, rec))
}

func TestUpdateInteractable_PathIDWins(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPut, "/api/v1/interactables/Poster2", models.PosterSessionArea{ID: "spam", Stars: 4, Title: strPtr("t")})
	require.Equal(t, http.StatusOK, rec.Code)
	area := decode[models.PosterSessionArea](t, rec)
	assert.Equal(t, "Poster2", area.ID)
	assert.Equal(t, 4, area.Stars)

	first, err := s.town.Area("Poster1")
	require.NoError(t, err)
	assert.Equal(t, models.PosterSessionArea{ID: "Poster1"}, first)
}

func TestErrorStatuses(t *testing.T) {
	s := newServer(t)
	alice := s.join(t, "alice")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown area", http.MethodGet, "/api/v1/interactables/nowhere", nil, http.StatusNotFound},
		{"unknown player", http.MethodDelete, "/api/v1/players/nobody", nil, http.StatusNotFound},
		{"move into unknown area", http.MethodPut, "/api/v1/players/" + alice.ID + "/location", models.PlayerLocation{InteractableID: strPtr("nowhere")}, http.StatusBadRequest},
		{"poster in empty area", http.MethodPost, "/api/v1/posters", models.PosterSessionArea{ID: "Poster2", Title: strPtr("t"), ImageContents: strPtr("i")}, http.StatusBadRequest},
		{"star without poster", http.MethodPost, "/api/v1/posters/Poster1/stars", nil, http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/api/v1/interactables", nil, http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.do(t, tc.method, tc.path, tc.body).Code)
		})
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/interactables/Poster1", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeWS(t *testing.T) {
	s := newServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()
	alice := s.join(t, "alice")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?player_id=" + alice.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration is asynchronous; wait until the hub knows the socket.
	require.Eventually(t, func() bool { return s.hub.ClientCount("test-town") == 1 }, time.Second, 10*time.Millisecond)

	payload, err := json.Marshal(models.PlayerLocation{X: 4, InteractableID: strPtr("Poster1")})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(models.ClientEvent{Event: "playerMovement", Payload: payload}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var evt struct {
		Event   string        `json:"event"`
		Payload models.Player `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, town.EventPlayerMoved, evt.Event)
	require.NotNil(t, evt.Payload.Location.InteractableID)
	assert.Equal(t, "Poster1", *evt.Payload.Location.InteractableID)

	occupants, err := s.town.Occupants("Poster1")
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, occupants)
}

func TestServeWS_UnknownPlayer(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodGet, "/ws?player_id=nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/ws", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinTown_BadBodyIsLoggedWithHTTPPrefix(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := newServer(t)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, logs.String(), "[HTTP] Error decoding request body for JoinTown")
}
