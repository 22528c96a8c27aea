package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/scene"
)

func analyzeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Extract features, warnings and suggestions from scene files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	return cmd
}

func runAnalyze(cmd *cobra.Command, files []string, asJSON bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	analyzer, err := scene.NewAnalyzerFromFile(cfg.Scenes.Rules)
	if err != nil {
		return err
	}

	analyses := make([]scene.Analysis, 0, len(files))
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		analyses = append(analyses, analyzer.Analyze(id, string(source)))
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analyses)
	}

	for i, analysis := range analyses {
		if i > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		printFeatures(analysis.Features)
		for _, warning := range analysis.Warnings {
			fmt.Fprintf(os.Stdout, "  warning: %s\n", warning)
		}
		for _, suggestion := range analysis.Suggestions {
			fmt.Fprintf(os.Stdout, "  suggestion: %s\n", suggestion)
		}
	}
	return nil
}

func printFeatures(f scene.Features) {
	layout := f.Layout
	if layout == "" {
		layout = "-"
	}
	fmt.Fprintf(os.Stdout, "%s: cards=%d layout=%s theme=%s duration=%ds\n", f.ID, f.CardCount, layout, f.Theme, f.DurationSeconds)
	if len(f.Beats) > 0 {
		fmt.Fprintf(os.Stdout, "  beats: %s\n", strings.Join(f.Beats, ", "))
	}
	if len(f.Tags) > 0 {
		fmt.Fprintf(os.Stdout, "  tags: %s\n", strings.Join(f.Tags, ", "))
	}
	if f.Description != "" {
		fmt.Fprintf(os.Stdout, "  description: %s\n", f.Description)
	}
}
