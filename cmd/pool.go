package cmd

import (
	"errors"

	"lendingpool/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "manage asset pools",
}

var poolInitCmd = &cobra.Command{
	Use:   "init",
	Short: "create the pools listed in config, existing pools are skipped",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		ledgerz := provideLedger(database)
		for idx := range cfg.Assets {
			asset := cfg.Assets[idx]

			pool, err := ledgerz.InitPool(ctx, &asset)
			if errors.Is(err, core.ErrPoolExists) {
				cmd.Println(asset.Symbol, "exists")
				continue
			} else if err != nil {
				printError(cmd, "init "+asset.Symbol, err)
				return
			}

			cmd.Println(pool.Symbol, pool.AssetID, "created")
		}
	},
}

var poolListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list pools accrued to now",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		ledgerz := provideLedger(database)
		pools, err := providePoolStore(database).List(ctx)
		if err != nil {
			printError(cmd, "list", err)
			return
		}

		for _, p := range pools {
			pool, err := ledgerz.Pool(ctx, p.AssetID)
			if err != nil {
				printError(cmd, "accrue "+p.Symbol, err)
				return
			}

			cmd.Printf("%s %s deposits %d/%d borrows %d/%d reserve %d rate %s cf %s\n",
				pool.Symbol, pool.AssetID,
				pool.TotalDeposits, pool.TotalDepositShares,
				pool.TotalBorrows, pool.TotalBorrowShares,
				pool.Reserve(), pool.InterestRate, pool.CollateralFactor)
		}
	},
}

var poolRateCmd = &cobra.Command{
	Use:   "rate <asset> <rate per second>",
	Short: "accrue at the current rate then switch to a new one",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		rate, err := decimal.NewFromString(args[1])
		if err != nil || rate.IsNegative() {
			cmd.PrintErrln("invalid rate", args[1])
			return
		}

		database := provideDatabase()
		defer database.Close()

		ledgerz := provideLedger(database)
		pool, err := ledgerz.SetInterestRate(ctx, args[0], rate)
		if err != nil {
			printError(cmd, "set rate", err)
			return
		}

		printJSON(cmd, pool)
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(poolInitCmd, poolListCmd, poolRateCmd)
}
