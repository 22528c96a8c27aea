package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the catalogs into the vector store and compute embeddings",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	result, err := s.app.Seed(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Seed complete.")
	fmt.Fprintf(os.Stdout, "  Knowledge rows:      %d\n", result.Knowledge)
	fmt.Fprintf(os.Stdout, "  Embeddings computed: %d\n", result.Embedded)
	return nil
}
