package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"switchscope/adapters/memory"
	"switchscope/adapters/postgres"
	"switchscope/adapters/upstream"
	"switchscope/app"
	"switchscope/internal/config"
	"switchscope/ports"
	"switchscope/ui"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	client := upstream.NewClient(cfg.Upstream)

	repo, err := buildRepository(cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	investigations := app.NewInvestigationService(client, client, client, repo, client)
	dashboards := app.NewDashboardService(client)

	server := ui.NewServer(cfg.Server, dashboards, investigations, defaultProduct())
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildRepository selects postgres when DATABASE_URL is set, otherwise the
// in-memory store.
func buildRepository(cfg *config.Config) (ports.InvestigationRepository, error) {
	if cfg.Database.URL == "" {
		log.Println("DATABASE_URL not set, using in-memory session store")
		return memory.NewRepository(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}
	return postgres.NewRepository(db), nil
}

func defaultProduct() string {
	if p := os.Getenv("TARGET_PRODUCT"); p != "" {
		return p
	}
	return "Onco-Pro"
}
