package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "turnero",
		Short: "Dock turn board API",
		Long: `Turn board for the jetski and vessel dock.

Examples:
  turnero serve
  turnero seed
  turnero user add --email op@muelle.co --name Operador --password secreto --role admin`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newUserCommand())

	if err := root.Execute(); err != nil {
		log.Printf("[turnero] %v", err)
		os.Exit(1)
	}
}
