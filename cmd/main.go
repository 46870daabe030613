package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Vasu1712/posterboard/internal/api/towns"
	"github.com/Vasu1712/posterboard/internal/config"
	"github.com/Vasu1712/posterboard/internal/middleware"
	"github.com/Vasu1712/posterboard/internal/storage/memory"
	"github.com/Vasu1712/posterboard/internal/storage/valkey"
	"github.com/Vasu1712/posterboard/internal/town"
	"github.com/Vasu1712/posterboard/internal/ws"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var store town.PosterStore
	switch cfg.PosterStore {
	case config.StoreValkey:
		valkeyStore, err := valkey.NewPosterStore(context.Background(), cfg.ValkeyAddr)
		if err != nil {
			log.Fatalf("Failed to open poster store: %v", err)
		}
		defer valkeyStore.Close()
		store = valkeyStore
	default:
		store = memory.NewPosterStore()
	}

	hub := ws.NewHub()
	go hub.Run()

	townMap, err := town.LoadMapFile(cfg.MapFile)
	if err != nil {
		log.Fatalf("Failed to load town map: %v", err)
	}
	t := town.New(cfg.TownID, hub.Emitter(cfg.TownID), store)
	if err := t.InitializeFromMap(townMap); err != nil {
		log.Fatalf("Failed to initialize town %s: %v", cfg.TownID, err)
	}

	router := mux.NewRouter()
	towns.RegisterTownRoutes(router, &towns.TownHandler{Town: t, Hub: hub, Store: store})

	log.Printf("Server started at %s (town %s, %s poster store)", cfg.Addr(), cfg.TownID, cfg.PosterStore)
	log.Fatal(http.ListenAndServe(cfg.Addr(), middleware.CORS(cfg.AllowedOrigin)(router)))
}
