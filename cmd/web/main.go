package main

import (
	"log"
	"net/http"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/config"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/db"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/events"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/middleware"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/relay"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	middleware.InitAuth()

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	hub := relay.NewHub(originChecker(cfg.CORSAllowOrigins))
	broadcaster := events.MultiBroadcaster{hub}
	if cfg.NATSEnabled {
		publisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS:", err)
		}
		defer publisher.Close()
		broadcaster = append(broadcaster, publisher)
	}

	router := newRouter(cfg, sessionManager, hub, broadcaster)

	log.Println("Server starting on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
