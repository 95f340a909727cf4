package scan

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Progress counts filesystem entries visited during tree construction.
// Every child examined by Tree increments it once, retained or not, so the
// count deliberately runs ahead of the number of retained files. A nil
// Progress is valid and counts nothing.
//
// The counter is atomic so a reporter goroutine can read it while the
// renderer recursion writes it.
type Progress struct {
	visited atomic.Int64
}

// Visit records one examined entry.
func (p *Progress) Visit() {
	if p != nil {
		p.visited.Add(1)
	}
}

// Visited returns the number of entries examined so far.
func (p *Progress) Visited() int64 {
	if p == nil {
		return 0
	}

	return p.visited.Load()
}

// StartReporter invokes hook with the current visit count on each tick until
// ctx is done. It does nothing when hook is nil.
func (p *Progress) StartReporter(ctx context.Context, hook func(visited int64), interval time.Duration) {
	if hook == nil || p == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(p.Visited())
			case <-ctx.Done():
				return
			}
		}
	}()
}
