package main

import (
	"github.com/spf13/cobra"

	"motionkb/internal/scene"
)

func scenesSearchCmd() *cobra.Command {
	var (
		cards    int
		minCards int
		maxCards int
		q        scene.Query
		theme    string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank discovered scenes against structural criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cards") {
				q.CardCount = &cards
			}
			if cmd.Flags().Changed("min-cards") {
				q.MinCards = &minCards
			}
			if cmd.Flags().Changed("max-cards") {
				q.MaxCards = &maxCards
			}
			q.Theme = scene.Theme(theme)
			return runScenesSearch(cmd, q, limit)
		},
	}
	cmd.Flags().IntVar(&cards, "cards", 0, "Exact card count")
	cmd.Flags().IntVar(&minCards, "min-cards", 0, "Minimum card count")
	cmd.Flags().IntVar(&maxCards, "max-cards", 0, "Maximum card count")
	cmd.Flags().StringVar(&q.Layout, "layout", "", "Layout preset")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: dark, light or mixed")
	cmd.Flags().StringSliceVar(&q.Beats, "beat", nil, "Beat the scene should use (repeatable)")
	cmd.Flags().StringSliceVar(&q.Tags, "tag", nil, "Tag the scene should carry (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", scene.DefaultSearchLimit, "Maximum results")
	return cmd
}

func runScenesSearch(cmd *cobra.Command, q scene.Query, limit int) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	matches, err := s.app.SearchScenes(q, limit)
	if err != nil {
		return err
	}
	printMatches(matches)
	return nil
}
