// Package application wires the configuration, clients, engine and servers
// together and runs them until the context is cancelled.
package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"mining_hub/internal/catalog"
	"mining_hub/internal/config"
	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/capacity"
	"mining_hub/internal/engine"
	"mining_hub/internal/infrastructure/pricecache"
	"mining_hub/internal/infrastructure/refdata"
	"mining_hub/internal/infrastructure/ships"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
	"mining_hub/internal/server"
	"mining_hub/internal/worker"
	"mining_hub/pkg/application/connectors"
	"mining_hub/pkg/application/modules"
	"mining_hub/pkg/httpx"
	"mining_hub/pkg/logx"
	"mining_hub/pkg/middlewarex"
)

const logFieldMaxLen = 4096

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Outbound clients share the logging transport.
	outboundTransport := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	datasetClient := refdata.NewClient(
		cfg.Dataset.BaseURL,
		map[entity.Category]string{
			entity.ShipMineable:    cfg.Dataset.ShipDocument,
			entity.VehicleMineable: cfg.Dataset.VehicleDocument,
		},
		&http.Client{Timeout: cfg.Dataset.Timeout, Transport: outboundTransport},
	)

	shipClient := ships.NewClient(
		cfg.Ships.RosterURL,
		&http.Client{Timeout: cfg.Ships.Timeout, Transport: outboundTransport},
	)

	liveClient := uexlive.NewClient(
		cfg.Live.BaseURL,
		&http.Client{Timeout: cfg.Live.Timeout, Transport: outboundTransport},
	)

	overlayOpts := []overlay.Option{
		overlay.WithMinInterval(cfg.Live.MinInterval),
	}

	if cfg.Redis.Enabled() {
		redisConn := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		defer redisConn.Close(ctx)

		snapshotCache := pricecache.New(redisConn.Client(ctx), cfg.Redis.SnapshotTTL)
		overlayOpts = append(overlayOpts, overlay.WithSnapshotCache(snapshotCache))
	}

	live := overlay.New(liveClient, cfg.Live.Prefer, cfg.Live.TopSellers, overlayOpts...)

	eng := engine.New(
		catalog.NewStore(datasetClient),
		live,
		capacity.NewAdvisor(shipClient),
	)

	if cfg.Redis.Enabled() {
		for _, category := range entity.Categories() {
			eng.WarmFromSnapshot(ctx, category)
		}
	}

	refresher := worker.NewRefresher(eng).WithTickInterval(cfg.Live.TickInterval)
	if cfg.Live.Enabled() {
		if err := refresher.Start(ctx); err != nil {
			return fmt.Errorf("refresher.Start: %w", err)
		}
		defer refresher.Stop()
	}

	srv := server.NewServer(
		server.NewCatalogServer(eng, shipClient),
		server.NewBasketServer(eng),
		server.NewSummaryServer(eng),
		server.NewLiveServer(eng),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTPServer.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTPServer.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTPServer.MetricListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
