package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"motionkb/internal/scene"
)

func scenesSimilarCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar <scene-id>",
		Short: "List scenes resembling a discovered scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesSimilar(cmd, args[0], limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", scene.DefaultSimilarLimit, "Maximum results")
	return cmd
}

func runScenesSimilar(cmd *cobra.Command, id string, limit int) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	matches, ok, err := s.app.SimilarScenes(id, limit)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("scene %q not found", id)
	}
	printMatches(matches)
	return nil
}
