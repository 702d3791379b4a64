package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/quickquote/internal/audit"
	"github.com/sells-group/quickquote/internal/dupe"
	"github.com/sells-group/quickquote/internal/location"
	"github.com/sells-group/quickquote/internal/mcp"
	"github.com/sells-group/quickquote/internal/quote"
	"github.com/sells-group/quickquote/internal/rating"
	"github.com/sells-group/quickquote/pkg/geocode"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP quote server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := rating.ValidateTables(); err != nil {
			return eris.Wrap(err, "serve: rating tables")
		}
		if err := rating.LoadOverrides(cfg.Rating.OverridesPath); err != nil {
			return eris.Wrap(err, "serve: rating overrides")
		}

		pipeline, err := buildPipeline()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mcp.NewServer(pipeline).Handler(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Bool("google_geocoding", cfg.Geocode.GoogleKey != ""),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildPipeline wires the quote pipeline from configuration.
func buildPipeline() (*quote.Pipeline, error) {
	opts := []geocode.Option{
		geocode.WithTimeout(time.Duration(cfg.Geocode.TimeoutSecs) * time.Second),
		geocode.WithRateLimit(cfg.Geocode.RateLimit),
	}
	if cfg.Geocode.GoogleKey != "" {
		opts = append(opts, geocode.WithAPIKey(cfg.Geocode.GoogleKey))
	}
	if cfg.Geocode.CachePath != "" {
		opts = append(opts, geocode.WithCache(
			cfg.Geocode.CachePath,
			time.Duration(cfg.Geocode.CacheTTLMins)*time.Minute,
		))
	}

	auditor, err := audit.NewWriter(cfg.Audit.Dir)
	if err != nil {
		return nil, eris.Wrap(err, "serve: audit writer")
	}

	return quote.NewPipeline(
		location.NewResolver(geocode.NewClient(opts...)),
		dupe.NewGuard(time.Duration(cfg.Dupe.WindowSecs)*time.Second),
		auditor,
		cfg.Server.BaseURL,
	), nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
