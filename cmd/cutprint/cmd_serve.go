package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/server"
	"github.com/piwi3910/cutprint/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the cut list HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	if c, ok := src.(source.Closer); ok {
		defer c.Close()
	}

	return server.New(cfg, src, logger).Run(ctx)
}

func openSource(ctx context.Context, sc model.SourceConfig) (source.Source, error) {
	src, err := source.New(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", sc.Kind, err)
	}
	logger.Debug("project source ready", zap.String("kind", src.Kind()))
	return src, nil
}
