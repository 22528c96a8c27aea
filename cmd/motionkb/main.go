package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"motionkb/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "motionkb",
		Short:        "Animation knowledge retrieval and scene analysis",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Project config file")
	root.AddCommand(initCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(scenesCmd())
	root.AddCommand(knowledgeCmd())
	root.AddCommand(beatsCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(retrieveCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
