package renderer

import "sync"

// progressTracker counts completed pixels under a mutex so a future
// parallel render loop (or a concurrent progress reader) stays correct.
type progressTracker struct {
	mu    sync.Mutex
	done  int
	total int
}

func (p *progressTracker) start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = 0
	p.total = total
}

func (p *progressTracker) incDone() (done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.done, p.total
}
