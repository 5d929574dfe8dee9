package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/zeroproof/internal/core/port"
	"github.com/niksmo/zeroproof/pkg/schema"
)

var _ port.CartProcessor = (*CartProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "runProc"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A cartEventCodec used for serde [schema.CartEventV1]
type cartEventCodec struct {
	serde Serde
}

func (c cartEventCodec) Encode(v any) ([]byte, error) {
	const op = "cartEventCodec.Encode"
	if _, ok := v.(schema.CartEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c cartEventCodec) Decode(data []byte) (any, error) {
	const op = "cartEventCodec.Decode"
	var s schema.CartEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A cartCodec used for serde [schema.CartV1] group table values.
type cartCodec struct {
	codec schema.Codec
}

func newCartCodec() (cartCodec, error) {
	c, err := schema.NewCodec(schema.CartSchemaTextV1)
	if err != nil {
		return cartCodec{}, err
	}
	return cartCodec{c}, nil
}

func (c cartCodec) Encode(v any) ([]byte, error) {
	const op = "cartCodec.Encode"
	s, ok := v.(schema.CartV1)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.codec.Marshal(s)
}

func (c cartCodec) Decode(data []byte) (any, error) {
	const op = "cartCodec.Decode"
	var s schema.CartV1
	if err := c.codec.Unmarshal(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A CartProcessor folds add-to-cart events of the input stream into one
// cart per cart id kept in the group table.
type CartProcessor struct {
	opPrefix string
	proc     processor
}

func NewCartProcessor(
	seedBrokers []string,
	inputStream string,
	group string,
	cartEventSerde Serde,
) (*CartProcessor, error) {
	const op = "NewCartProcessor"

	p := CartProcessor{opPrefix: "CartProcessor"}

	tableCodec, err := newCartCodec()
	if err != nil {
		return nil, opErr(err, op)
	}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			cartEventCodec{cartEventSerde},
			p.processFn,
		),
		goka.Persist(tableCodec),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *CartProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *CartProcessor) Close() {
	p.proc.close()
}

func (p *CartProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op), "cartID", ctx.Key())

	event, ok := msg.(schema.CartEventV1)
	if !ok {
		log.Error("unexpected message", "type", fmt.Sprintf("%T", msg))
		return
	}

	cart := applyCartEvent(ctx.Value(), event)
	ctx.SetValue(cart)
	log.Debug("cart updated", "variantID", event.VariantID, "lines", len(cart.Lines))
}

// applyCartEvent folds event into the stored table value, which is nil for
// a cart seen the first time.
func applyCartEvent(stored any, event schema.CartEventV1) schema.CartV1 {
	current, _ := stored.(schema.CartV1)
	cart := schemaV1ToCart(current).Add(schemaV1ToCartItem(event))
	return cartToSchemaV1(cart)
}
