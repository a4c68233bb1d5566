package service

import (
	"context"
	"sync"
	"time"
)

// Pacer delivers replies after a fixed delay. Replies for the same key are
// delivered in the order they were scheduled, even when they overlap.
type Pacer struct {
	delay time.Duration

	mu    sync.Mutex
	tails map[int64]chan struct{}
	wg    sync.WaitGroup
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay, tails: make(map[int64]chan struct{})}
}

// Schedule runs deliver once the delay has passed and every earlier reply for
// key has been delivered. deliver is skipped when ctx is done first.
func (p *Pacer) Schedule(ctx context.Context, key int64, deliver func()) {
	p.mu.Lock()
	prev := p.tails[key]
	done := make(chan struct{})
	p.tails[key] = done
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.release(key, done)

		cancelled := false
		timer := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			cancelled = true
		case <-timer.C:
		}
		timer.Stop()

		// Never finish ahead of an earlier reply, or later ones could overtake it.
		if prev != nil {
			<-prev
		}
		if cancelled || ctx.Err() != nil {
			return
		}
		deliver()
	}()
}

func (p *Pacer) release(key int64, done chan struct{}) {
	p.mu.Lock()
	if p.tails[key] == done {
		delete(p.tails, key)
	}
	p.mu.Unlock()
	close(done)
}

// Pending reports how many keys still have replies in flight.
func (p *Pacer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tails)
}

// Wait blocks until every scheduled reply has been delivered or dropped.
func (p *Pacer) Wait() {
	p.wg.Wait()
}
