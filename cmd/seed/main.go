package main

import (
	"context"
	"log"

	"github.com/tiagofoil/valuerank/internal/config"
	"github.com/tiagofoil/valuerank/internal/repository"
	"github.com/tiagofoil/valuerank/internal/store/sqlite"
)

// Seeds the catalog database from the embedded snapshot. Safe to rerun:
// rows are upserted by model id, and benchmark values written by the
// scraper or admin since the last run are preserved.
func main() {
	cfg := config.Load()

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	ctx := context.Background()
	seeded := 0

	for _, m := range repository.FallbackModels() {
		m.Source = "seed"
		if err := store.UpsertModel(ctx, m); err != nil {
			log.Fatalf("Failed to seed %s: %v", m.ID, err)
		}
		seeded++
	}

	log.Printf("Seeded %d models into %s", seeded, cfg.Database.Path)
}
