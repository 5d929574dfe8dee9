package port

import (
	"context"
	"sync"

	"github.com/niksmo/zeroproof/internal/core/domain"
)

type (
	runner interface {
		Run(context.Context)
	}

	// asyncRunner starts in the background, calls wg.Done once it is ready
	// and stopFn when it stops.
	asyncRunner interface {
		Run(ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// CatalogReader reads the catalog from the source of truth.
type CatalogReader interface {
	ReadProducts(context.Context) ([]domain.Product, error)
	ReadCollections(context.Context) ([]domain.Collection, error)
}

// CatalogSnapshotter hands out the latest catalog snapshot without
// blocking.
type CatalogSnapshotter interface {
	Snapshot() domain.Catalog
}

type CatalogRefresher interface {
	CatalogSnapshotter
	runner
}

// CartEmitter forwards add-to-cart intents to the cart collaborator.
type CartEmitter interface {
	EmitCartItem(context.Context, domain.CartItem) error
}

type CartReader interface {
	ReadCart(ctx context.Context, cartID string) (domain.Cart, error)
}

type CartEventsProducer interface {
	CartEmitter
	closer
}

type CartProcessor interface {
	asyncRunner
	closer
}

type CartView interface {
	CartReader
	asyncRunner
	closer
}
