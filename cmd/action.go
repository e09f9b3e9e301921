package cmd

import (
	"context"

	"lendingpool/core"
	"lendingpool/pkg/id"
	"lendingpool/pkg/number"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/qrcode"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

type ledgerAction func(ledgerz core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error)

func newActionCmd(use, short string, action ledgerAction) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <user> <asset> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			req, err := parseRequest(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				return
			}

			database := provideDatabase()
			defer database.Close()

			tx, err := action(provideLedger(database))(ctx, req)
			if err != nil {
				printError(cmd, use, err)
				return
			}

			printJSON(cmd, tx)
		},
	}

	c.Flags().String("trace", "", "trace id, repeated calls with the same trace are idempotent")
	return c
}

func parseRequest(cmd *cobra.Command, args []string) (*core.Request, error) {
	amount, err := cast.ToUint64E(args[2])
	if err != nil {
		return nil, err
	}

	trace, _ := cmd.Flags().GetString("trace")
	return &core.Request{
		TraceID: trace,
		UserID:  args[0],
		AssetID: args[1],
		Amount:  amount,
	}, nil
}

var depositCmd = newActionCmd("deposit", "deposit into a pool", func(l core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error) {
	return l.Deposit
})

var withdrawCmd = newActionCmd("withdraw", "withdraw an amount of the deposited value", func(l core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error) {
	return l.Withdraw
})

var redeemCmd = newActionCmd("redeem", "withdraw by deposit shares", func(l core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error) {
	return l.Redeem
})

var borrowCmd = newActionCmd("borrow", "borrow against deposited collateral", func(l core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error) {
	return l.Borrow
})

var repayCmd = newActionCmd("repay", "repay borrowed debt", func(l core.LedgerService) func(context.Context, *core.Request) (*core.Transaction, error) {
	return l.Repay
})

var payCmd = &cobra.Command{
	Use:   "pay <asset> <amount>",
	Short: "print the mixin payment code of a deposit or repay, then run the action with the printed trace",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		asset, ok := cfg.Asset(args[0])
		if !ok {
			cmd.PrintErrln("unknown asset", args[0])
			return
		}

		amount, err := cast.ToUint64E(args[1])
		if err != nil || amount == 0 {
			cmd.PrintErrln("invalid amount", args[1])
			return
		}

		trace, _ := cmd.Flags().GetString("trace")
		if trace == "" {
			trace = id.GenTraceID()
		}

		client := provideMixinClient()
		input := mixin.TransferInput{
			AssetID:    asset.AssetID,
			OpponentID: client.ClientID,
			Amount:     number.FromUint64(amount).Shift(-asset.Decimals),
			// custody looks the payment up by the inbound transfer of the operation
			TraceID: id.SubTraceID(trace, 0),
			Memo:    "pay",
		}

		payment, err := client.VerifyPayment(ctx, input)
		if err != nil {
			panic(err)
		}

		printJSON(cmd, map[string]interface{}{
			"trace":   trace,
			"payment": input,
		})

		url := mixin.URL.Codes(payment.CodeID)
		cmd.Println(url)
		qrcode.Fprint(cmd.OutOrStdout(), url)
	},
}

var liquidateCmd = &cobra.Command{
	Use:   "liquidate <liquidator> <debt asset> <amount> <target>",
	Short: "repay part of an under collateralized debt for discounted collateral",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		req, err := parseRequest(cmd, args[:3])
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		collateral, _ := cmd.Flags().GetString("collateral")

		database := provideDatabase()
		defer database.Close()

		tx, err := provideLedger(database).Liquidate(ctx, &core.LiquidateRequest{
			Request:           *req,
			TargetID:          args[3],
			CollateralAssetID: collateral,
		})
		if err != nil {
			printError(cmd, "liquidate", err)
			return
		}

		printJSON(cmd, tx)
	},
}

func init() {
	payCmd.Flags().String("trace", "", "trace id of the deposit or repay this payment is for")
	rootCmd.AddCommand(depositCmd, withdrawCmd, redeemCmd, borrowCmd, repayCmd, payCmd, liquidateCmd)

	liquidateCmd.Flags().String("trace", "", "trace id, repeated calls with the same trace are idempotent")
	liquidateCmd.Flags().String("collateral", "", "collateral asset to seize, defaults to the target's largest deposit")
}
