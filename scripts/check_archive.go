//go:build ignore

// Connects to the audit archive configured through DB_* variables, applies
// the schema and prints the latest entries:
//
//	API_KEY=local DB_PASSWORD=postgres go run scripts/check_archive.go
package main

import (
	"context"
	"fmt"
	"os"

	"aura-bijoux/internal/config"
	"aura-bijoux/internal/database"
	"aura-bijoux/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg.Archive.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open archive: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var total int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM admin_log").Scan(&total); err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Connected to %s, %d archived entries\n", cfg.Archive.Database.Database, total)

	entries, err := repository.NewAuditRepository(pool, logger).Recent(ctx, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	for _, e := range entries {
		fmt.Printf("  %s  %-8s %-12s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.TargetType, e.AdminName, e.Action)
	}
}
