package main

import (
	"os"

	"github.com/spf13/cobra"

	"dav/internal/interfaces/cli/migrate"
	"dav/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dav",
		Short: "dav - backend as a service",
		Long:  `dav is a backend-as-a-service platform with app-scoped sessions and an optimistically consistent table object store.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
