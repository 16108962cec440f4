package export

import (
	"time"

	"go.uber.org/zap"
)

// Progress counts outstanding fetches and logs a throttled status line
// as results come in, so long exports stay observable without flooding
// the logs.
//
// Progress is not safe for concurrent use. The fetcher drives it from
// the single aggregation loop only; nothing else may touch it.
type Progress struct {
	logger     *zap.Logger
	interval   time.Duration
	now        func() time.Time
	pending    int
	lastReport time.Time
}

// NewProgress creates a reporter that logs at most once per interval.
// A non-positive interval falls back to one second.
func NewProgress(logger *zap.Logger, interval time.Duration) *Progress {
	if interval <= 0 {
		interval = time.Second
	}
	return &Progress{
		logger:     logger,
		interval:   interval,
		now:        time.Now,
		lastReport: time.Now(),
	}
}

// Pending records one id handed to the worker pool.
func (p *Progress) Pending() {
	p.pending++
}

// Done records one observed result. If work remains and the reporting
// interval has elapsed, it logs the outstanding count and resets the
// timer. Never reports once the count reaches zero.
func (p *Progress) Done() {
	p.pending--

	if p.pending <= 0 {
		return
	}

	now := p.now()
	if now.Sub(p.lastReport) > p.interval {
		p.lastReport = now
		p.logger.Info("items still to go", zap.Int("remaining", p.pending))
	}
}
