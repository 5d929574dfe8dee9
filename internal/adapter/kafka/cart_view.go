package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/port"
	"github.com/niksmo/zeroproof/pkg/schema"
)

var _ port.CartView = (*CartView)(nil)

// A CartView serves carts from the group table of [CartProcessor].
type CartView struct {
	opPrefix string
	gv       *goka.View
}

func NewCartView(seedBrokers []string, group string) (*CartView, error) {
	const op = "NewCartView"

	codec, err := newCartCodec()
	if err != nil {
		return nil, opErr(err, op)
	}

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		codec,
		withNonlogViewOpt(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &CartView{opPrefix: "CartView", gv: gv}, nil
}

// Run starts the view in its own goroutine and returns at once. stopFn is
// called when the view stops.
func (v *CartView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	defer wg.Done()
	go v.runView(ctx, stopFn)
}

func (v *CartView) runView(ctx context.Context, stopFn context.CancelFunc) {
	const op = "runView"
	log := slog.With("op", makeOp(v.opPrefix, op))

	defer stopFn()

	log.Info("running")
	if err := v.gv.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (v *CartView) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(v.opPrefix, op))
	log.Info("view is closed")
}

// ReadCart returns the cart stored under cartID, or an empty cart.
func (v *CartView) ReadCart(ctx context.Context, cartID string) (domain.Cart, error) {
	const op = "ReadCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, opErr(err, v.opPrefix, op)
	}

	if !v.gv.Recovered() {
		return domain.Cart{}, opErr(ErrViewNotReady, v.opPrefix, op)
	}

	value, err := v.gv.Get(cartID)
	if err != nil {
		return domain.Cart{}, opErr(err, v.opPrefix, op)
	}
	return toCart(value)
}

func toCart(value any) (domain.Cart, error) {
	if value == nil {
		return domain.Cart{}, nil
	}
	s, ok := value.(schema.CartV1)
	if !ok {
		return domain.Cart{}, fmt.Errorf(
			"%w: %T", ErrInvalidValueType, value,
		)
	}
	return schemaV1ToCart(s), nil
}
