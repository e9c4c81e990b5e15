package repository

import (
	"context"
	"fmt"
	"time"

	"aura-bijoux/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const recordTimeout = 3 * time.Second

// AuditRepository archives admin log entries outside the process.
type AuditRepository interface {
	// Record stores an entry. Recording the same id twice is a no-op.
	Record(ctx context.Context, entry model.AdminLogEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.AdminLogEntry, error)
}

// auditRepository implements AuditRepository using PostgreSQL.
type auditRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAuditRepository creates a PostgreSQL-backed audit archive.
func NewAuditRepository(pool *pgxpool.Pool, logger zerolog.Logger) AuditRepository {
	return &auditRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "audit").Logger(),
	}
}

func (r *auditRepository) Record(ctx context.Context, entry model.AdminLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	query := `
		INSERT INTO admin_log (id, logged_at, admin_name, action, target_type, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.AdminName,
		entry.Action,
		string(entry.TargetType),
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to archive audit entry %s: %w", entry.ID, err)
	}

	r.logger.Debug().Str("entry_id", entry.ID).Msg("audit entry archived")
	return nil
}

func (r *auditRepository) Recent(ctx context.Context, limit int) ([]model.AdminLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, logged_at, admin_name, action, target_type, details
		FROM admin_log
		ORDER BY logged_at DESC, archived_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit archive: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AdminLogEntry, 0, limit)
	for rows.Next() {
		var (
			entry  model.AdminLogEntry
			target string
		)
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.AdminName, &entry.Action, &target, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.TargetType = model.TargetType(target)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit archive: %w", err)
	}

	return entries, nil
}
