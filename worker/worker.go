package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker background loop, returns when ctx is done
type Worker interface {
	Run(ctx context.Context) error
}

const (
	defaultDelay    = 100 * time.Millisecond
	defaultErrDelay = 500 * time.Millisecond
)

// TickWorker calls onTick in a loop, pausing Delay after a successful tick
// and ErrDelay after a failed one
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = defaultDelay
	}

	if errDelay <= 0 {
		errDelay = defaultErrDelay
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err == nil {
				dur = delay
			} else {
				dur = errDelay
			}
		}
	}
}

type OnWork func(ctx context.Context) error

// BaseJob cron scheduled job, a tick is skipped while the previous one runs
type BaseJob struct {
	Location string
	Spec     string
	OnWork   OnWork

	running int32
}

func (job *BaseJob) Run(ctx context.Context) error {
	l, err := time.LoadLocation(job.Location)
	if err != nil {
		return err
	}

	c := cron.New(cron.WithLocation(l))
	if _, err := c.AddFunc(job.Spec, func() { job.tick(ctx) }); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

func (job *BaseJob) tick(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	_ = job.OnWork(ctx)
}
