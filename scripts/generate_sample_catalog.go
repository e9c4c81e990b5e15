//go:build ignore

// Writes the built-in catalogue as gzipped JSON-lines seed files, split in two
// so the multi-file merge can be exercised locally:
//
//	go run scripts/generate_sample_catalog.go
//	SEED_FILES=data/seeds/catalog-a.jsonl.gz,data/seeds/catalog-b.jsonl.gz go run ./cmd/api
package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"aura-bijoux/internal/model"
	"aura-bijoux/internal/seed"
)

func main() {
	dataDir := "data/seeds"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := seed.DefaultCatalog()
	half := len(products) / 2
	files := map[string][]model.Product{
		"catalog-a.jsonl.gz": products[:half],
		// Overlaps catalog-a by one product; the first file wins on load.
		"catalog-b.jsonl.gz": products[max(half-1, 0):],
	}

	for filename, batch := range files {
		filePath := filepath.Join(dataDir, filename)
		if err := writeSeedFile(filePath, batch); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}
		fmt.Printf("Created %s with %d products\n", filePath, len(batch))
	}
}

func writeSeedFile(filePath string, products []model.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}
	return nil
}
