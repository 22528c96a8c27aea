package main

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"motionkb/internal/mcp"
)

func serveCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, metricsAddr string) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	if metricsAddr == "" {
		metricsAddr = s.config.Metrics.Addr
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := mcp.NewServer(s.app, version)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return server.Run(gctx, &sdk.StdioTransport{})
	})
	if metricsAddr != "" {
		g.Go(func() error {
			return s.metrics.Serve(gctx, metricsAddr, s.logger)
		})
	}
	return g.Wait()
}
