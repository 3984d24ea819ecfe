package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process counters for the runtime endpoint.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	evaluationsRun    uint64
	evaluationsFailed uint64
	transitionsTotal  uint64
	exitsTotal        uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordEvaluation(failed, transitioned, exited bool) {
	atomic.AddUint64(&c.evaluationsRun, 1)
	if failed {
		atomic.AddUint64(&c.evaluationsFailed, 1)
	}
	if transitioned {
		atomic.AddUint64(&c.transitionsTotal, 1)
	}
	if exited {
		atomic.AddUint64(&c.exitsTotal, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"evaluationsRun":    atomic.LoadUint64(&c.evaluationsRun),
		"evaluationsFailed": atomic.LoadUint64(&c.evaluationsFailed),
		"transitionsTotal":  atomic.LoadUint64(&c.transitionsTotal),
		"exitsTotal":        atomic.LoadUint64(&c.exitsTotal),
	}
}
