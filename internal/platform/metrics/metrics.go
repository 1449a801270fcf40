package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap request counters for the /metrics endpoint.
type Collector struct {
	requests     atomic.Uint64
	clientErrors atomic.Uint64
	serverErrors atomic.Uint64
	rateLimited  atomic.Uint64
	durationMs   atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.durationMs.Add(uint64(duration.Milliseconds()))
}

type Snapshot struct {
	RequestsTotal     uint64  `json:"requestsTotal"`
	ClientErrorsTotal uint64  `json:"clientErrorsTotal"`
	ServerErrorsTotal uint64  `json:"serverErrorsTotal"`
	RateLimitedTotal  uint64  `json:"rateLimitedTotal"`
	TotalDurationMs   uint64  `json:"totalDurationMs"`
	AvgDurationMs     float64 `json:"avgDurationMs"`
}

func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		RequestsTotal:     c.requests.Load(),
		ClientErrorsTotal: c.clientErrors.Load(),
		ServerErrorsTotal: c.serverErrors.Load(),
		RateLimitedTotal:  c.rateLimited.Load(),
		TotalDurationMs:   c.durationMs.Load(),
	}
	if s.RequestsTotal > 0 {
		s.AvgDurationMs = float64(s.TotalDurationMs) / float64(s.RequestsTotal)
	}
	return s
}
