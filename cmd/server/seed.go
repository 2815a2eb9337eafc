package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"backend-turnero/internal/queue"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default vessel roster into an empty board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			board := queue.NewBoard(s, nil)
			n, err := board.EnsureRoster(ctx, queue.DefaultRoster)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d vessels inserted\n", n)
			return nil
		},
	}
}
