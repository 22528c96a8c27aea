package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"motionkb/internal/discovery"
)

func scenesLintCmd() *cobra.Command {
	var strict bool
	var usage bool
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report layout, beat and style issues in discovered scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesLint(cmd, strict, usage)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when warnings are found")
	cmd.Flags().BoolVar(&usage, "usage", false, "Also print layout and beat usage counts")
	return cmd
}

func runScenesLint(cmd *cobra.Command, strict, usage bool) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	report, err := s.app.Report()
	if err != nil {
		return err
	}

	var warnIssues []discovery.Issue
	var infoIssues []discovery.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case discovery.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		case discovery.SeverityInfo:
			infoIssues = append(infoIssues, issue)
		}
	}

	fmt.Fprintf(os.Stdout, "Scenes analysed: %d\n", report.ScenesFound)
	if len(warnIssues) == 0 && len(infoIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
	}
	if len(warnIssues) > 0 {
		fmt.Fprintf(os.Stdout, "\nWarnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}
	if len(infoIssues) > 0 {
		fmt.Fprintf(os.Stdout, "\nSuggestions (%d):\n", len(infoIssues))
		printIssues(os.Stdout, infoIssues)
	}
	if usage {
		printUsage(os.Stdout, "Layouts", report.LayoutUsage())
		printUsage(os.Stdout, "Beats", report.BeatUsage())
	}

	if strict && len(warnIssues) > 0 {
		return fmt.Errorf("lint found %d warnings", len(warnIssues))
	}
	return nil
}

func printIssues(out io.Writer, issues []discovery.Issue) {
	for _, issue := range issues {
		location := issue.Scene
		if location == "" {
			location = issue.FilePath
		} else if issue.FilePath != "" {
			location = fmt.Sprintf("%s (%s)", issue.Scene, issue.FilePath)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}

func printUsage(out io.Writer, label string, usage []discovery.Usage) {
	fmt.Fprintf(out, "\n%s:\n", label)
	if len(usage) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for _, u := range usage {
		fmt.Fprintf(out, "  %-20s %d\n", u.Name, u.Count)
	}
}
