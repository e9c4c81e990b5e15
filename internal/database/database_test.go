package database

import (
	"context"
	"testing"

	"aura-bijoux/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		errMatch string
	}{
		{
			name:     "unparseable port",
			cfg:      config.DatabaseConfig{Host: "localhost", Port: -1, User: "u", Database: "d", MaxConnections: 1, MinConnections: 1},
			errMatch: "failed to parse database config",
		},
		{
			name:     "unreachable host",
			cfg:      config.DatabaseConfig{Host: "127.0.0.1", Port: 1, User: "u", Database: "d", MaxConnections: 1, MinConnections: 1},
			errMatch: "failed to ping database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(context.Background(), tt.cfg, zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
			assert.Nil(t, pool)
		})
	}
}

func TestSchema_DeclaresArchiveTable(t *testing.T) {
	assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS admin_log")
	assert.Contains(t, Schema, "id          TEXT PRIMARY KEY")
}
