package utils

import (
	"context"
	"time"
)

// Ticker yields tick times on a fixed grid: the first tick is due at start,
// subsequent ticks at start + n*period. A slow consumer does not shift the
// grid; grid points that are already in the past collapse into a single
// immediately-due tick.
type Ticker struct {
	start  time.Time
	period time.Duration
	ticks  int

	now func() time.Time
}

func NewTicker(start time.Time, period time.Duration) *Ticker {
	if period <= 0 {
		panic("ticker period must be positive")
	}
	return &Ticker{start: start, period: period, now: time.Now}
}

// Ticks returns the number of ticks served so far.
func (t *Ticker) Ticks() int {
	return t.ticks
}

// NextTick returns the grid point the next Wait call will serve at the
// earliest.
func (t *Ticker) NextTick() time.Time {
	return t.start.Add(time.Duration(t.ticks) * t.period)
}

// Wait blocks until the next grid point is due and returns it. It returns the
// context error if the context is canceled first.
func (t *Ticker) Wait(ctx context.Context) (time.Time, error) {
	next := t.NextTick()
	if now := t.now(); now.After(next) {
		t.ticks = int(now.Sub(t.start) / t.period)
		next = t.NextTick()
	}

	for {
		now := t.now()
		if !now.Before(next) {
			break
		}
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return time.Time{}, ctx.Err()
		case <-timer.C:
		}
	}

	t.ticks++
	return next, nil
}
