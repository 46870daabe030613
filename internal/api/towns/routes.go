package towns

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterTownRoutes registers the town's HTTP and WebSocket routes on r.
func RegisterTownRoutes(r *mux.Router, handler *TownHandler) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(logRequests)

	api.HandleFunc("/players", handler.JoinTown).Methods(http.MethodPost)
	api.HandleFunc("/players", handler.ListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players/{playerID}", handler.LeaveTown).Methods(http.MethodDelete)
	api.HandleFunc("/players/{playerID}/location", handler.MovePlayer).Methods(http.MethodPut)

	api.HandleFunc("/interactables", handler.ListInteractables).Methods(http.MethodGet)
	api.HandleFunc("/interactables/{areaID}", handler.GetInteractable).Methods(http.MethodGet)
	api.HandleFunc("/interactables/{areaID}", handler.UpdateInteractable).Methods(http.MethodPut)
	api.HandleFunc("/interactables/{areaID}/occupants", handler.GetOccupants).Methods(http.MethodGet)

	api.HandleFunc("/posters/history", handler.PosterHistory).Methods(http.MethodGet)
	api.HandleFunc("/posters", handler.CreatePoster).Methods(http.MethodPost)
	api.HandleFunc("/posters/{areaID}/image", handler.GetPosterImage).Methods(http.MethodGet)
	api.HandleFunc("/posters/{areaID}/stars", handler.StarPoster).Methods(http.MethodPost)

	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[Town] WebSocket %s", r.URL.String())
		handler.ServeWS(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[Town] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
