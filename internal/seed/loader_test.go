package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gzipLines compresses lines, one per row.
func gzipLines(t *testing.T, lines []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := w.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func productLine(t *testing.T, p model.Product) string {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return string(b)
}

func writeSeedFile(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, gzipLines(t, lines), 0o600))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	catalogue := DefaultCatalog()[:3]

	lines := []string{productLine(t, catalogue[0]), "", "   ", productLine(t, catalogue[1]), productLine(t, catalogue[2])}
	path := writeSeedFile(t, "catalogue.jsonl.gz", lines)

	products, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, catalogue[0].ID, products[0].ID)
	assert.Equal(t, catalogue[1].Name, products[1].Name)
	assert.Equal(t, catalogue[2].Price.String(), products[2].Price.String())
	assert.Equal(t, catalogue[2].Stock, products[2].Stock)
}

func TestFileLoader_Errors(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.jsonl")
	require.NoError(t, os.WriteFile(plain, []byte(`{"id":"x"}`), 0o600))

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.gz"), wantMsg: "failed to open"},
		{name: "not gzip", path: plain, wantMsg: "gzip"},
		{name: "malformed line", path: writeSeedFile(t, "bad.gz", []string{`{"id":"ok","price":"1.00"}`, `{"id":`}), wantMsg: "line 2"},
		{name: "bad price", path: writeSeedFile(t, "price.gz", []string{`{"id":"p","price":"caro"}`}), wantMsg: "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefaultCatalog_IsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range DefaultCatalog() {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, p.Category.Valid(), p.ID)
		assert.True(t, p.Color.Valid(), p.ID)
		assert.GreaterOrEqual(t, p.Stock, 0, p.ID)
		assert.False(t, p.Price.IsNegative(), p.ID)
		assert.NotEmpty(t, p.Images, p.ID)
	}
}
