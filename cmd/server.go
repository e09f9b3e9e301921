package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lendingpool/handler"
	"lendingpool/handler/hc"
	"lendingpool/internal/metrics"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lending pool api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		pools := providePoolStore(database)
		transactions := provideTransactionStore(database)
		transfers := provideTransferStore(database)
		transferz := provideTransferService(provideCustody(), transfers)

		// writes must see committed positions, reads may lag a few seconds
		ledgerz := provideLedgerService(database, providePositionStore(database), transferz)
		queryz := provideLedgerService(database, provideCachedPositionStore(database), transferz)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			// hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, pools))
		}

		{
			// prometheus
			mux.Handle("/metrics", metrics.Handler())
		}

		{
			// restful api
			svr := handler.New(pools, transactions, ledgerz, queryz)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		if withWorkers, _ := cmd.Flags().GetBool("workers"); withWorkers {
			go runWorkers(ctx, database, ledgerz, transfers, transferz)
		}

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("workers", false, "run background workers in process, needed by the custody book")
}
