package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerKeepsOrderPerKey(t *testing.T) {
	p := NewPacer(5 * time.Millisecond)

	var mu sync.Mutex
	var got []int
	for i := 0; i < 5; i++ {
		p.Schedule(context.Background(), 1, func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	p.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, p.Pending())
}

func TestPacerDelays(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	start := time.Now()
	var at time.Time
	p.Schedule(context.Background(), 1, func() { at = time.Now() })
	p.Wait()

	assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
}

func TestPacerCancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	delivered := false
	p.Schedule(ctx, 1, func() { delivered = true })
	cancel()
	p.Wait()

	assert.False(t, delivered)
}

func TestPacerCancelledDoesNotBlockLater(t *testing.T) {
	p := NewPacer(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	var got []string
	p.Schedule(ctx, 1, func() { got = append(got, "cancelled") })
	p.Schedule(context.Background(), 1, func() {
		mu.Lock()
		got = append(got, "second")
		mu.Unlock()
	})
	p.Wait()

	assert.Equal(t, []string{"second"}, got)
}

func TestPacerKeysIndependent(t *testing.T) {
	p := NewPacer(time.Millisecond)
	var mu sync.Mutex
	seen := map[int64]int{}
	for key := int64(1); key <= 3; key++ {
		for i := 0; i < 2; i++ {
			p.Schedule(context.Background(), key, func() {
				mu.Lock()
				seen[key]++
				mu.Unlock()
			})
		}
	}
	p.Wait()
	assert.Equal(t, map[int64]int{1: 2, 2: 2, 3: 2}, seen)
}
