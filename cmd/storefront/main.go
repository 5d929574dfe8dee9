package main

import (
	"context"

	"github.com/niksmo/zeroproof/config"
	"github.com/niksmo/zeroproof/internal/app"
	"github.com/niksmo/zeroproof/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(
		context.Background(), cfg.HTTPServer.CloseTimeout,
	)
	defer cancel()

	storefront.Close(ctx)
}
