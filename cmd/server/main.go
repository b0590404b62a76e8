package main

import (
	"context"
	"log"
	"net/http"

	"mute-bridge/internal/bridge"
	"mute-bridge/internal/config"
	"mute-bridge/internal/db"
	"mute-bridge/internal/hub"
	"mute-bridge/internal/server"
	"mute-bridge/internal/store"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	st := store.NewGormStore(conn)
	// Sessions never outlive the game server; drop anything left over
	// from a previous run.
	if err := st.PurgeSessions(context.Background()); err != nil {
		log.Fatalf("session purge failed: %v", err)
	}

	h := hub.New()
	b := bridge.New(st, h)
	srv := server.New(b, h, cfg.AuthToken)

	addr := ":" + cfg.Port
	log.Printf("mute bridge listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
