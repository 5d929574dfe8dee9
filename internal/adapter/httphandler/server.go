package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 30 * time.Second

	msgHandlerTimeout = "storefront is busy, try again later"
)

// HTTPServer serves the storefront. Every request is logged and bounded
// by the handler timeout.
type HTTPServer struct {
	srv *http.Server
}

func NewHTTPServer(
	addr string, handler http.Handler, handlerTimeout time.Duration,
) HTTPServer {
	bounded := http.TimeoutHandler(
		LogRequests(handler), handlerTimeout, msgHandlerTimeout,
	)
	return HTTPServer{&http.Server{
		Addr:              addr,
		Handler:           bounded,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

// Run blocks until the listener fails or the server is closed, then
// calls stopFn so the rest of the app shuts down too.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op, "addr", s.srv.Addr)

	defer stopFn()

	log.Info("storefront is listening")
	err := s.srv.ListenAndServe()
	switch {
	case err == nil, errors.Is(err, http.ErrServerClosed):
	default:
		log.Error("storefront stopped unexpectedly", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	if err := s.srv.Shutdown(ctx); err != nil {
		log.Error("failed to drain connections", "err", err)
		return
	}
	log.Info("storefront is closed")
}
