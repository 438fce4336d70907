package parallel

import (
	"sync/atomic"
)

// Progress accumulates completed work units against a fixed total. It
// is safe for concurrent use by many workers; each worker adds the
// length of a scanline once per completed line.
type Progress struct {
	total     int64
	completed atomic.Int64

	// onUpdate, when set, is invoked after every increment with the
	// running completed count. Called from worker goroutines.
	onUpdate func(completed, total int64)
}

// NewProgress creates a reporter for the given total number of work
// units (typically the pixel count of the full requested region).
func NewProgress(total int, onUpdate func(completed, total int64)) *Progress {
	return &Progress{total: int64(total), onUpdate: onUpdate}
}

// Add records n completed work units.
func (p *Progress) Add(n int) {
	done := p.completed.Add(int64(n))
	if p.onUpdate != nil {
		p.onUpdate(done, p.total)
	}
}

// Completed returns the number of work units finished so far.
func (p *Progress) Completed() int64 {
	return p.completed.Load()
}

// Fraction returns completion in [0, 1]. A zero-total reporter is
// always complete.
func (p *Progress) Fraction() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.completed.Load()) / float64(p.total)
}
