package storage

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/port"
)

var _ port.CatalogRefresher = (*CatalogSnapshot)(nil)

// A CatalogSnapshot keeps the latest catalog read from the source and
// refreshes it on every tick. A failed read keeps the previous list.
type CatalogSnapshot struct {
	reader   port.CatalogReader
	interval time.Duration
	current  atomic.Pointer[domain.Catalog]
}

func NewCatalogSnapshot(
	reader port.CatalogReader, interval time.Duration,
) *CatalogSnapshot {
	s := &CatalogSnapshot{reader: reader, interval: interval}
	s.current.Store(&domain.Catalog{
		LoadingProducts:    true,
		LoadingCollections: true,
	})
	return s
}

func (s *CatalogSnapshot) Snapshot() domain.Catalog {
	return *s.current.Load()
}

// Run refreshes the snapshot at once and then every interval until ctx is
// done.
func (s *CatalogSnapshot) Run(ctx context.Context) {
	const op = "CatalogSnapshot.Run"
	log := slog.With("op", op)

	log.Info("running", "interval", s.interval)
	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh reads both catalog lists and publishes a new snapshot.
func (s *CatalogSnapshot) Refresh(ctx context.Context) {
	const op = "CatalogSnapshot.Refresh"
	log := slog.With("op", op)

	next := s.Snapshot()

	products, err := s.reader.ReadProducts(ctx)
	if err != nil {
		log.Error("failed to read products", "err", err)
	} else {
		next.Products = products
		next.LoadingProducts = false
	}

	collections, err := s.reader.ReadCollections(ctx)
	if err != nil {
		log.Error("failed to read collections", "err", err)
	} else {
		next.Collections = collections
		next.LoadingCollections = false
	}

	s.current.Store(&next)
	log.Debug(
		"snapshot published",
		"products", len(next.Products),
		"collections", len(next.Collections),
	)
}
