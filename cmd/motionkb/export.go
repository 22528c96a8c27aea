package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalogs as SQL INSERT statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, output string) error {
	ctx := cmd.Context()
	s, err := startSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	sql, err := s.app.ExportSQL()
	if err != nil {
		return err
	}
	sql += "\n"

	if output == "" {
		_, err := fmt.Fprint(os.Stdout, sql)
		return err
	}
	if err := os.WriteFile(output, []byte(sql), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
