package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/niksmo/zeroproof/config"
	"github.com/niksmo/zeroproof/internal/adapter"
	"github.com/niksmo/zeroproof/internal/adapter/httphandler"
	"github.com/niksmo/zeroproof/internal/adapter/kafka"
	"github.com/niksmo/zeroproof/internal/adapter/storage"
	"github.com/niksmo/zeroproof/internal/core/port"
	"github.com/niksmo/zeroproof/internal/core/service"
	"github.com/niksmo/zeroproof/pkg/money"
	"github.com/niksmo/zeroproof/pkg/retry"
	"github.com/niksmo/zeroproof/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const brokerConnectAttempts = 5

type cart struct {
	serde     schema.Serde
	producer  port.CartEventsProducer
	processor port.CartProcessor
	view      port.CartView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsCfg     *tls.Config
	sqldb      storage.SQLDB
	catalog    port.CatalogRefresher
	cart       cart
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTLS()
	app.initStorage()
	app.initSerdes()
	app.initCartAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	c := app.cfg.Broker.TLS
	if !c.Enabled {
		return
	}

	tlsCfg, err := adapter.MakeTLSConfig(c.CAFile, c.CertFile, c.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	kafka.UseTLS(tlsCfg)
	app.tlsCfg = tlsCfg
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(
		app.ctx, app.cfg.SQLDB, app.cfg.DBPingAttempts,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.sqldb = sqldb
	app.catalog = storage.NewCatalogSnapshot(
		storage.NewCatalogRepository(sqldb),
		app.cfg.Catalog.RefreshInterval,
	)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Broker.SchemaRegistryURLs...)}
	if app.tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsCfg))
	}

	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CartEvents + "-value"
	serde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.cart.serde = serde
}

func (app *App) initCartAdapters() {
	const op = "App.initCartAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topic := app.cfg.Broker.Topics.CartEvents
	group := app.cfg.Broker.Groups.CartAggregator

	producer, err := retry.DoWithResult(ctx, retry.Config{
		MaxAttempts: brokerConnectAttempts,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
	}, func() (kafka.CartEventsProducer, error) {
		return kafka.NewCartEventsProducer(
			kafka.ProducerClientOpt(ctx, seedBrokers, topic, app.tlsCfg),
			kafka.ProducerEncoderOpt(app.cart.serde),
		)
	})
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewCartProcessor(
		seedBrokers, topic, group, app.cart.serde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewCartView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.cart.producer = producer
	app.cart.processor = processor
	app.cart.view = view
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	formatter, err := money.NewFormatter(
		app.cfg.Currency.Locale, app.cfg.Currency.Code,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service = service.New(
		app.catalog,
		app.cart.producer,
		app.cart.view,
		formatter,
		nil,
	)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	mux := http.NewServeMux()
	if err := httphandler.RegisterStorefront(mux, app.service); err != nil {
		app.fallDown(op, err)
	}
	httphandler.RegisterAPI(mux, app.service)

	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServer.Addr, mux, app.cfg.HTTPServer.HandlerTimeout,
	)
}

// Run starts the background workers and then the http server. Any of
// them stopping calls stopFn.
func (app *App) Run(stopFn context.CancelFunc) {
	ctx := app.ctx

	go app.catalog.Run(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go app.cart.processor.Run(ctx, stopFn, &wg)
	go app.cart.view.Run(ctx, stopFn, &wg)
	wg.Wait()

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.cart.processor.Close()
	app.cart.view.Close()
	app.cart.producer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
