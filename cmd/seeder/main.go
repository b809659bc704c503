package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/rootstats/internal/database"
	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/ledger"
)

const (
	batchSize = 100
	numGames  = 1000
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
		"SEED_ARCHIVE":      os.Getenv("SEED_ARCHIVE"),
	}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	roster := game.DefaultRoster()
	store := ledger.New(db, roster)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	log.Info("Preparing to insert random games...", "total", numGames, "batch_size", batchSize)
	startTime := time.Now()

	var all []ledger.Record
	batch := make([]ledger.Record, 0, batchSize)
	for i := 0; i < numGames; i++ {
		batch = append(batch, randomRecord(rng, roster))

		if (i+1)%batchSize == 0 || (i+1) == numGames {
			if _, err := store.Import(ctx, batch); err != nil {
				log.Fatalf("Failed to import batch: %s", err)
			}
			all = append(all, batch...)
			batch = make([]ledger.Record, 0, batchSize)
			log.Info("Inserted batch", "completed", i+1, "total", numGames)
		}
	}

	log.Info("Successfully inserted all random games.", "duration", time.Since(startTime))

	if path := cfg["SEED_ARCHIVE"]; path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create archive: %s", err)
		}
		defer f.Close()
		if err := ledger.EncodeArchive(f, all); err != nil {
			log.Fatalf("Failed to write archive: %s", err)
		}
		log.Info("Wrote seed archive", "path", path, "games", len(all))
	}
}

// randomRecord seats two to four distinct players on distinct factions and picks one winner.
func randomRecord(rng *rand.Rand, roster *game.Roster) ledger.Record {
	names := roster.Names()
	factions := roster.Factions()
	seats := 2 + rng.Intn(3)

	nameIdx := rng.Perm(len(names))[:seats]
	factionIdx := rng.Perm(len(factions))[:seats]
	winner := rng.Intn(seats)

	r := ledger.Record{
		ID:   uuid.NewString(),
		Date: time.Now().AddDate(0, 0, -rng.Intn(365)).Format(time.DateOnly),
	}
	for seat := 0; seat < seats; seat++ {
		r.Players = append(r.Players, ledger.PlayerRecord{
			Name:     string(names[nameIdx[seat]]),
			Faction:  string(factions[factionIdx[seat]]),
			IsWinner: seat == winner,
		})
	}
	return r
}
