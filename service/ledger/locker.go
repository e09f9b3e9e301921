package ledger

import (
	"context"
	"sort"
	"sync"
)

// locker keyed mutexes whose acquisition can be abandoned with ctx
type locker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLocker() *locker {
	return &locker{locks: make(map[string]chan struct{})}
}

func (l *locker) get(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}

	return ch
}

// Lock takes every key in sorted order. The returned func releases them.
func (l *locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	var held []chan struct{}
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, k := range sorted {
		ch := l.get(k)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		}
	}

	return release, nil
}
