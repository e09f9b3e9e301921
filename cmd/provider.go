package cmd

import (
	"time"

	"lendingpool/core"
	"lendingpool/internal/clock"
	"lendingpool/service/custody"
	"lendingpool/service/ledger"
	"lendingpool/service/risk"
	"lendingpool/service/transfer"
	ledgerstore "lendingpool/store/ledger"
	"lendingpool/store/pool"
	"lendingpool/store/position"
	"lendingpool/store/transaction"
	transferstore "lendingpool/store/transfer"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/sirupsen/logrus"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideMixinClient() *mixin.Client {
	c, err := mixin.NewFromKeystore(&cfg.Mixin.Keystore)
	if err != nil {
		panic(err)
	}

	return c
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.New(db)
}

func providePositionStore(db *db.DB) core.PositionStore {
	return position.New(db)
}

func provideCachedPositionStore(db *db.DB) core.PositionStore {
	return position.Cache(position.New(db), 3*time.Second)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func provideTransferStore(db *db.DB) core.TransferStore {
	return transferstore.New(db)
}

func provideLedgerStore(db *db.DB) core.LedgerStore {
	return ledgerstore.New(db)
}

// ------------------service------------------------------------

func provideCustody() core.Custody {
	switch cfg.App.Custody {
	case core.CustodyMixin:
		return custody.NewMixin(provideMixinClient(), cfg.Mixin.Pin, cfg.Assets)
	default:
		logrus.Warnln("custody book enabled, balances live in this process only")
		return custody.NewFaucetBook()
	}
}

func provideTransferService(custody core.Custody, transfers core.TransferStore) core.TransferService {
	return transfer.New(custody, transfers)
}

func provideRiskService() core.RiskService {
	return risk.New(cfg.Risk)
}

func provideLedgerService(db *db.DB, positions core.PositionStore, transferz core.TransferService) core.LedgerService {
	return ledger.New(
		providePoolStore(db),
		positions,
		provideTransactionStore(db),
		provideLedgerStore(db),
		provideRiskService(),
		transferz,
		clock.System(),
	)
}

func provideLedger(db *db.DB) core.LedgerService {
	transferz := provideTransferService(provideCustody(), provideTransferStore(db))
	return provideLedgerService(db, providePositionStore(db), transferz)
}
