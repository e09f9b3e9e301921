package transfer

import (
	"context"
	"fmt"

	"lendingpool/core"
	"lendingpool/internal/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

const maxErrorLen = 255

// New new transfer service
func New(custody core.Custody, transfers core.TransferStore) core.TransferService {
	return &transferService{
		custody:   custody,
		transfers: transfers,
	}
}

type transferService struct {
	custody   core.Custody
	transfers core.TransferStore
}

func transferLogger(ctx context.Context, transfer *core.Transfer) *logrus.Entry {
	return logger.FromContext(ctx).WithFields(logrus.Fields{
		"trace":     transfer.TraceID,
		"direction": transfer.Direction.String(),
		"asset":     transfer.AssetID,
		"amount":    transfer.Amount,
	})
}

// Settle collects an inbound transfer from the user. Nothing is stored here,
// the row is committed as done together with the operation.
func (s *transferService) Settle(ctx context.Context, transfer *core.Transfer) error {
	log := transferLogger(ctx, transfer)

	if transfer.Direction != core.TransferDirectionIn {
		return fmt.Errorf("settle %s: direction %s: %w", transfer.TraceID, transfer.Direction, core.ErrOperationForbidden)
	}

	if e := s.custody.Transfer(ctx, transfer); e != nil {
		log.WithError(e).Infoln("custody.Transfer")
		metrics.TransferFailures.WithLabelValues(transfer.Direction.String()).Inc()
		return fmt.Errorf("settle %s: %v: %w", transfer.TraceID, e, core.ErrPaymentNotSettled)
	}

	transfer.Status = core.TransferStatusDone
	log.Debugln("settled")
	return nil
}

// Deliver hands an outbound transfer to custody and records the outcome. A
// failed delivery stays pending for the cashier.
func (s *transferService) Deliver(ctx context.Context, transfer *core.Transfer) error {
	log := transferLogger(ctx, transfer)

	if e := s.custody.Transfer(ctx, transfer); e != nil {
		log.WithError(e).Warnln("custody.Transfer")
		metrics.TransferFailures.WithLabelValues(transfer.Direction.String()).Inc()

		reason := e.Error()
		if len(reason) > maxErrorLen {
			reason = reason[:maxErrorLen]
		}

		if err := s.transfers.MarkFailed(ctx, transfer, reason); err != nil {
			log.WithError(err).Errorln("transfers.MarkFailed")
		}

		return e
	}

	if e := s.transfers.MarkDone(ctx, transfer); e != nil {
		log.WithError(e).Errorln("transfers.MarkDone")
		return e
	}

	log.Debugln("delivered")
	return nil
}
