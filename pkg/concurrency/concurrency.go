package concurrency

import "sync"

const (
	// DefaultMax default max
	DefaultMax = 256
)

// GoLimit go limit
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = DefaultMax
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add blocks until a slot is free
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done release a slot
func (g *GoLimit) Done() {
	<-g.ch
}

// Await runs fn for every index in [0, n) with at most limit of them in
// flight and blocks until all returned
func Await(limit *GoLimit, n int, fn func(i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		limit.Add()
		wg.Add(1)
		go func(i int) {
			defer func() {
				limit.Done()
				wg.Done()
			}()

			fn(i)
		}(i)
	}

	wg.Wait()
}
