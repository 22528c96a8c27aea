package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/prompt"
)

func retrieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve <request>",
		Short: "Print the assembled prompt context for a scene request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetrieve(cmd, strings.Join(args, " "))
		},
	}
}

func runRetrieve(cmd *cobra.Command, request string) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	pc, err := s.app.PromptContext(ctx, request)
	if err != nil {
		return err
	}
	text := prompt.Format(pc)
	if text == "" {
		fmt.Fprintln(os.Stdout, "No context found.")
		return nil
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}
