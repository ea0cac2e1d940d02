package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/qbitgate/filter"
	"github.com/s0up4200/qbitgate/gateway"
	"github.com/s0up4200/qbitgate/qbittorrent"
	"github.com/s0up4200/qbitgate/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long:  `Start the HTTP gateway and forward requests to the configured qBittorrent WebUI.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	limiter, err := qbittorrent.ParseRateLimit(cfg.QBittorrent.RateLimit)
	if err != nil {
		return err
	}

	client, err := qbittorrent.NewClient(cfg.QBittorrent.URL, logger.With().Str("component", "qbittorrent").Logger(),
		qbittorrent.WithTimeout(cfg.QBittorrent.Timeout),
		qbittorrent.WithRateLimiter(limiter),
		qbittorrent.WithUserAgent("qbitgate/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create qBittorrent client: %w", err)
	}

	service := gateway.NewService(client, logger.With().Str("component", "gateway").Logger(),
		gateway.WithConcurrency(cfg.QBittorrent.Concurrency),
	)

	srv := server.New(service, logger,
		server.WithAddr(cfg.Server.Addr()),
		server.WithBasePath(cfg.Server.BasePath),
		server.WithCompiler(filter.NewCompiler(filter.WithCache(cfg.Filter.CacheSize))),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)

	logger.Info().
		Str("version", appVersion).
		Str("upstream", client.BaseURL()).
		Str("base_path", cfg.Server.BasePath).
		Msg("Starting qbitgate")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return srv.Start(ctx)
}
