package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-planner/config"
	"goal-planner/repository"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestBuildCatalog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, err := buildCatalog(ctx, config.Config{}, logger)
	require.NoError(t, err)
	assert.Equal(t, len(repository.DefaultVehicles), catalog.Len())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vehicles:\n  - model: A\n    year: 2025\n    price: 10\n"), 0o644))
	catalog, err = buildCatalog(ctx, config.Config{CatalogFile: path}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	_, err = buildCatalog(ctx, config.Config{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")}, logger)
	assert.Error(t, err)
}
