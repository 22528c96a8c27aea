package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"motionkb/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a motionkb project config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	configFile := config.DefaultFile
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%s already exists", configFile)
	}

	contents := fmt.Sprintf(`project: %s

database:
  host: localhost
  port: 5432
  user: postgres
  name: motionkb
  sslmode: disable

embedding:
  provider: mock
  dimension: 1536

scenes:
  paths:
    - ./scenes/
  exclude:
    - "*.test.tsx"

knowledge:
  paths:
    - ./knowledge/
`, projectName)
	if err := os.WriteFile(configFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	for _, dir := range []string{"scenes", "knowledge"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Created %s\n", configFile)
	return nil
}
