package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/catalog"
	"motionkb/internal/retrieval"
)

func beatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beats",
		Short: "List and search the beat catalog",
	}
	cmd.AddCommand(beatsListCmd())
	cmd.AddCommand(beatsSearchCmd())
	return cmd
}

func beatsListCmd() *cobra.Command {
	var category string
	var examples bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List beats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBeatsList(cmd, category, examples)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to filter")
	cmd.Flags().BoolVar(&examples, "examples", false, "Print each beat's example")
	return cmd
}

func runBeatsList(cmd *cobra.Command, category string, examples bool) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	items, err := s.app.Beats(category)
	if err != nil {
		return err
	}
	printBeats(items, examples)
	return nil
}

func beatsSearchCmd() *cobra.Command {
	var category string
	var limit int
	var local bool
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search beats by similarity, or by substring with --local",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBeatsSearch(cmd, strings.Join(args, " "), category, limit, local)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to filter")
	cmd.Flags().IntVar(&limit, "limit", retrieval.DefaultBeatLimit, "Maximum results")
	cmd.Flags().BoolVar(&local, "local", false, "Substring search over the in-memory catalog")
	return cmd
}

func runBeatsSearch(cmd *cobra.Command, query, category string, limit int, local bool) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if local {
		items, err := s.app.FindBeats(query)
		if err != nil {
			return err
		}
		printBeats(items, true)
		return nil
	}

	result, err := s.app.SearchBeats(ctx, query, limit, category)
	if err != nil {
		return err
	}
	printBeats(result.Items, true)
	return nil
}

func printBeats(items []catalog.BeatItem, examples bool) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(os.Stdout, "%s [%s] %s", item.Name, item.Category, item.Description)
		if item.Similarity != nil {
			fmt.Fprintf(os.Stdout, " similarity=%.2f", *item.Similarity)
		}
		fmt.Fprintln(os.Stdout)
		if len(item.Params) > 0 {
			names := make([]string, 0, len(item.Params))
			for name, kind := range item.Params {
				names = append(names, fmt.Sprintf("%s:%s", name, kind))
			}
			sort.Strings(names)
			fmt.Fprintf(os.Stdout, "    params: %s\n", strings.Join(names, ", "))
		}
		if examples && item.Example != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", strings.ReplaceAll(item.Example, "\n", "\n    "))
		}
	}
}
