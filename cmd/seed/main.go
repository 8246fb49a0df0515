package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/imagegenhub/imagegenhub/config"
	"github.com/imagegenhub/imagegenhub/internal/infrastructure/memory"
)

// Writes the canonical demo fixture to disk so deployments can point
// SEED_FILE at an editable copy instead of the built-in collection.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	out := flag.String("out", "", "output path (defaults to SEED_FILE or seed_memes.json)")
	flag.Parse()

	path := *out
	if path == "" {
		path = cfg.SeedFile
	}
	if path == "" {
		path = "seed_memes.json"
	}

	memes := memory.SeedMemes()
	b, err := json.MarshalIndent(memes, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal seed data: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}
	fmt.Printf("wrote %d memes to %s\n", len(memes), path)
}
