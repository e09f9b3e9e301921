package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var ok, failed int32
	w := &TickWorker{Delay: time.Millisecond, ErrDelay: 50 * time.Millisecond}
	err := w.StartTick(ctx, func(ctx context.Context) error {
		if atomic.AddInt32(&ok, 1) > 5 {
			atomic.AddInt32(&failed, 1)
			return errors.New("EOF")
		}

		return nil
	})

	assert.Equal(t, context.DeadlineExceeded, err)
	assert.True(t, atomic.LoadInt32(&failed) <= 3, "error ticks back off")
}

func TestBaseJobSkipsOverlap(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	job := &BaseJob{OnWork: func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil
	}}

	go job.tick(context.Background())
	time.Sleep(10 * time.Millisecond)
	job.tick(context.Background())
	close(release)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBaseJobBadSpec(t *testing.T) {
	job := &BaseJob{Location: "UTC", Spec: "every now and then", OnWork: func(ctx context.Context) error { return nil }}
	assert.NotNil(t, job.Run(context.Background()))
}
