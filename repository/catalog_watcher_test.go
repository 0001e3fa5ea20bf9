package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "vehicles:\n  - model: A\n    year: 2025\n    price: 100\n")
	vehicles, err := LoadCatalogFile(path)
	require.NoError(t, err)
	catalog := NewCatalogMemory(vehicles)

	w, err := NewCatalogWatcher(path, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte(`
vehicles:
  - model: A
    year: 2025
    price: 100
  - model: B
    year: 2025
    price: 200
`), 0o644))

	assert.Eventually(t, func() bool { return catalog.Len() == 2 }, 5*time.Second, 20*time.Millisecond)
}

func TestCatalogWatcher_KeepsListingsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "vehicles:\n  - model: A\n    year: 2025\n    price: 100\n")
	catalog := NewCatalogMemory(DefaultVehicles)

	w, err := NewCatalogWatcher(path, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	w.reload()
	require.Equal(t, 1, catalog.Len())

	require.NoError(t, os.WriteFile(path, []byte("vehicles: []\n"), 0o644))
	w.reload()

	assert.Equal(t, 1, catalog.Len())
	w.watcher.Close()
}
