package cmd

import (
	"errors"

	"lendingpool/core"

	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:     "position <user>",
	Aliases: []string{"pos"},
	Short:   "show a user's positions and health",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		userID := args[0]

		database := provideDatabase()
		defer database.Close()

		ledgerz := provideLedger(database)
		pools, err := providePoolStore(database).List(ctx)
		if err != nil {
			printError(cmd, "list pools", err)
			return
		}

		for _, p := range pools {
			pos, err := ledgerz.Position(ctx, userID, p.AssetID)
			if errors.Is(err, core.ErrPositionNotFound) {
				continue
			} else if err != nil {
				printError(cmd, "position", err)
				return
			}

			cmd.Printf("%s deposited %d (%d shares) borrowed %d (%d shares)\n",
				p.Symbol, pos.Deposited, pos.DepositShares, pos.Borrowed, pos.BorrowShares)
		}

		h, err := ledgerz.Health(ctx, userID)
		if err != nil {
			printError(cmd, "health", err)
			return
		}

		printJSON(cmd, h)
	},
}

func init() {
	rootCmd.AddCommand(positionCmd)
}
