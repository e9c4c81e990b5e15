// Package seed bootstraps the catalogue from gzipped JSON-lines files, one
// product per line, read from the local file system or S3.
package seed

import (
	"context"
	"fmt"
	"sync"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads one catalogue file.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// LoadCatalog reads every file concurrently and concatenates the products in
// file order. A product id seen in an earlier file wins over later ones.
// With no files the built-in catalogue is returned.
func LoadCatalog(ctx context.Context, loader Loader, files []string, logger zerolog.Logger) ([]model.Product, error) {
	logger = logger.With().Str("component", "catalog-seed").Logger()

	if len(files) == 0 {
		products := DefaultCatalog()
		logger.Info().Int("products", len(products)).Msg("no seed files configured, using built-in catalogue")
		return products, nil
	}

	type loadResult struct {
		index    int
		products []model.Product
		err      error
	}

	resultChan := make(chan loadResult, len(files))
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			products, err := loader.Load(ctx, path)
			resultChan <- loadResult{index: index, products: products, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(files))
	for result := range resultChan {
		results[result.index] = result
	}

	var catalogue []model.Product
	seen := make(map[string]bool)
	for i, result := range results {
		if result.err != nil {
			logger.Error().Err(result.err).Str("file", files[i]).Msg("failed to load seed file")
			return nil, fmt.Errorf("failed to load seed file %s: %w", files[i], result.err)
		}

		skipped := 0
		for _, p := range result.products {
			if p.ID != "" && seen[p.ID] {
				skipped++
				continue
			}
			seen[p.ID] = true
			catalogue = append(catalogue, p)
		}
		logger.Info().
			Str("file", files[i]).
			Int("products", len(result.products)).
			Int("duplicates_skipped", skipped).
			Msg("seed file loaded")
	}

	logger.Info().Int("products", len(catalogue)).Msg("catalogue seed ready")
	return catalogue, nil
}
