package cmd

import (
	"context"
	"sync"

	"lendingpool/core"
	"lendingpool/worker"
	"lendingpool/worker/accrual"
	"lendingpool/worker/cashier"
	"lendingpool/worker/health"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run accrual, health scan and cashier workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())

		database := provideDatabase()
		defer database.Close()

		transfers := provideTransferStore(database)
		transferz := provideTransferService(provideCustody(), transfers)
		ledgerz := provideLedgerService(database, providePositionStore(database), transferz)

		runWorkers(ctx, database, ledgerz, transfers, transferz)
	},
}

func runWorkers(
	ctx context.Context,
	database *db.DB,
	ledgerz core.LedgerService,
	transfers core.TransferStore,
	transferz core.TransferService,
) {
	log := logger.FromContext(ctx)
	ctx = logger.WithContext(ctx, log)

	workers := []worker.Worker{
		accrual.New(cfg.App.Location, cfg.App.AccrualSpec, providePoolStore(database), ledgerz),
		health.New(cfg.App.Location, cfg.App.HealthSpec, providePositionStore(database), ledgerz, providePropertyStore(database), cfg.App.AlertWebhook),
		cashier.New(transfers, transferz, cashier.Config{
			Batch:    cfg.Cashier.Batch,
			Capacity: int64(cfg.Cashier.Capacity),
		}),
	}

	wg := sync.WaitGroup{}
	for _, w := range workers {
		wg.Add(1)

		go func(w worker.Worker) {
			defer wg.Done()
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				log.WithError(err).Errorln("worker stopped")
			}
		}(w)
	}

	wg.Wait()
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
