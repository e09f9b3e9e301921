package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker(t *testing.T) {
	l := newLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "b", "a", "b")
	require.Nil(t, err)

	t.Run("held key blocks until ctx is done", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := l.Lock(ctx, "a")
		assert.Equal(t, context.DeadlineExceeded, err)
	})

	t.Run("partial acquisition is released on cancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := l.Lock(ctx, "c", "b")
		assert.Equal(t, context.DeadlineExceeded, err)

		release, err := l.Lock(context.Background(), "c")
		require.Nil(t, err)
		release()
	})

	unlock()

	again, err := l.Lock(ctx, "a", "b")
	require.Nil(t, err)
	again()
}
