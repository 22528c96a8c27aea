package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/scene"
)

func scenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Search and lint the discovered scenes",
	}
	cmd.AddCommand(scenesSearchCmd())
	cmd.AddCommand(scenesSimilarCmd())
	cmd.AddCommand(scenesLintCmd())
	return cmd
}

func printMatches(matches []scene.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return
	}
	for _, match := range matches {
		fmt.Fprintf(os.Stdout, "%s score=%d", match.Scene.ID, match.Score)
		if len(match.Reasons) > 0 {
			fmt.Fprintf(os.Stdout, " (%s)", strings.Join(match.Reasons, "; "))
		}
		fmt.Fprintln(os.Stdout)
	}
}
