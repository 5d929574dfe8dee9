package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrViewNotReady     = errors.New("view is not recovered yet")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt builds and pings a client producing to topic. A nil
// tlsCfg dials brokers in plaintext.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsCfg != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already built client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// UseTLS makes goka processors and views dial brokers over TLS. It must be
// called before any of them is created.
func UseTLS(tlsCfg *tls.Config) {
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsCfg
	goka.ReplaceGlobalConfig(cfg)
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func withNonlogViewOpt() goka.ViewOption {
	return goka.WithViewLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func cartItemToSchemaV1(v domain.CartItem) (s schema.CartEventV1) {
	s.EventID = v.EventID
	s.CartID = v.CartID
	s.ProductID = v.ProductID
	s.VariantID = v.VariantID
	s.Quantity = v.Quantity
	s.OccurredAt = v.OccurredAt
	return
}

func schemaV1ToCartItem(s schema.CartEventV1) (v domain.CartItem) {
	v.EventID = s.EventID
	v.CartID = s.CartID
	v.ProductID = s.ProductID
	v.VariantID = s.VariantID
	v.Quantity = s.Quantity
	v.OccurredAt = s.OccurredAt
	return
}

func cartToSchemaV1(v domain.Cart) (s schema.CartV1) {
	s.Lines = make([]schema.CartLineV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Lines[i].ProductID = l.ProductID
		s.Lines[i].VariantID = l.VariantID
		s.Lines[i].Quantity = l.Quantity
	}
	return
}

func schemaV1ToCart(s schema.CartV1) (v domain.Cart) {
	v.Lines = make([]domain.CartLine, len(s.Lines))
	for i, l := range s.Lines {
		v.Lines[i].ProductID = l.ProductID
		v.Lines[i].VariantID = l.VariantID
		v.Lines[i].Quantity = l.Quantity
	}
	return
}
