package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/catalog"
	"motionkb/internal/retrieval"
)

func knowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "List and search the knowledge catalog",
	}
	cmd.AddCommand(knowledgeListCmd())
	cmd.AddCommand(knowledgeSearchCmd())
	return cmd
}

func knowledgeListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKnowledgeList(cmd, category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to filter: rule, example, pattern or antipattern")
	return cmd
}

func runKnowledgeList(cmd *cobra.Command, category string) error {
	if category != "" && !catalog.Category(category).Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	items, err := s.app.Knowledge(catalog.Category(category))
	if err != nil {
		return err
	}
	printKnowledge(items)
	return nil
}

func knowledgeSearchCmd() *cobra.Command {
	var category string
	var limit int
	var local bool
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search knowledge by similarity, or by substring with --local",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKnowledgeSearch(cmd, strings.Join(args, " "), category, limit, local)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to filter")
	cmd.Flags().IntVar(&limit, "limit", retrieval.DefaultKnowledgeLimit, "Maximum results")
	cmd.Flags().BoolVar(&local, "local", false, "Substring search over the in-memory catalog")
	return cmd
}

func runKnowledgeSearch(cmd *cobra.Command, query, category string, limit int, local bool) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if local {
		items, err := s.app.FindKnowledge(query)
		if err != nil {
			return err
		}
		printKnowledge(items)
		return nil
	}

	result, err := s.app.SearchKnowledge(ctx, query, limit, category)
	if err != nil {
		return err
	}
	printKnowledge(result.Items)
	return nil
}

func printKnowledge(items []catalog.KnowledgeItem) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(os.Stdout, "%d [%s] %s", item.ID, item.Category, item.Title)
		if item.Similarity != nil {
			fmt.Fprintf(os.Stdout, " similarity=%.2f", *item.Similarity)
		}
		fmt.Fprintln(os.Stdout)
		if len(item.Tags) > 0 {
			fmt.Fprintf(os.Stdout, "    tags: %s\n", strings.Join(item.Tags, ", "))
		}
	}
}
