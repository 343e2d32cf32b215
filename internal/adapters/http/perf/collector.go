// Package perf keeps a bounded in-memory log of request timings and page
// events and summarizes it on demand.
package perf

import (
	"math"
	"sort"
	"sync"
	"time"
)

// DefaultCapacity is the number of samples kept when none is given.
const DefaultCapacity = 4096

// Kind tells request samples from page event samples.
type Kind uint8

const (
	KindRequest Kind = iota
	KindPageEvent
)

// Sample is one recorded observation.
type Sample struct {
	Kind Kind
	// Name is "METHOD /path" for requests and "page:event" for page events.
	Name       string
	Status     int
	DurationMs float64
	At         time.Time
}

// Collector is a fixed-capacity ring of samples; the oldest sample is dropped when full.
type Collector struct {
	mu      sync.Mutex
	samples []Sample
	next    int
	filled  bool
	total   int64
	now     func() time.Time
}

// NewCollector returns a collector holding up to capacity samples.
// PRE: capacity > 0, otherwise DefaultCapacity is used
func NewCollector(capacity int) *Collector {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Collector{samples: make([]Sample, capacity), now: time.Now}
}

// Record stores s, stamping it with the current time if At is zero.
// POST: Total grows by one
func (c *Collector) Record(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.At.IsZero() {
		s.At = c.now()
	}
	c.samples[c.next] = s
	c.next++
	if c.next == len(c.samples) {
		c.next = 0
		c.filled = true
	}
	c.total++
}

// Request records one served request.
func (c *Collector) Request(method, path string, status int, d time.Duration) {
	c.Record(Sample{
		Kind:       KindRequest,
		Name:       method + " " + path,
		Status:     status,
		DurationMs: float64(d.Microseconds()) / 1000.0,
	})
}

// PageEvent records one dispatched page event.
func (c *Collector) PageEvent(page, event string) {
	c.Record(Sample{Kind: KindPageEvent, Name: page + ":" + event})
}

// Total returns the number of samples ever recorded.
func (c *Collector) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// RouteStat aggregates the requests to one route.
type RouteStat struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	MaxMs float64 `json:"max_ms"`
}

// EventCount counts one page event.
type EventCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary is computed from the samples recorded since a point in time.
type Summary struct {
	Requests     int          `json:"requests"`
	P50Ms        float64      `json:"p50_ms"`
	P95Ms        float64      `json:"p95_ms"`
	SlowestRoute []RouteStat  `json:"slowest_routes"`
	PageEvents   []EventCount `json:"page_events"`
}

// Summarize aggregates samples recorded at or after since.
// PRE: topN >= 0
// POST: SlowestRoute has at most topN entries ordered by average duration;
// PageEvents is ordered by count, then name
func (c *Collector) Summarize(since time.Time, topN int) Summary {
	c.mu.Lock()
	window := make([]Sample, 0, len(c.samples))
	n := c.next
	if c.filled {
		n = len(c.samples)
	}
	window = append(window, c.samples[:n]...)
	c.mu.Unlock()

	var durations []float64
	routes := make(map[string]*RouteStat)
	events := make(map[string]int)
	for _, s := range window {
		if s.At.Before(since) {
			continue
		}
		switch s.Kind {
		case KindRequest:
			durations = append(durations, s.DurationMs)
			rs, ok := routes[s.Name]
			if !ok {
				rs = &RouteStat{Name: s.Name}
				routes[s.Name] = rs
			}
			rs.AvgMs = (rs.AvgMs*float64(rs.Count) + s.DurationMs) / float64(rs.Count+1)
			rs.Count++
			rs.MaxMs = math.Max(rs.MaxMs, s.DurationMs)
		case KindPageEvent:
			events[s.Name]++
		}
	}

	sum := Summary{Requests: len(durations)}
	if len(durations) > 0 {
		sort.Float64s(durations)
		sum.P50Ms = percentile(durations, 50)
		sum.P95Ms = percentile(durations, 95)
	}

	sum.SlowestRoute = make([]RouteStat, 0, len(routes))
	for _, rs := range routes {
		sum.SlowestRoute = append(sum.SlowestRoute, *rs)
	}
	sort.Slice(sum.SlowestRoute, func(i, j int) bool {
		a, b := sum.SlowestRoute[i], sum.SlowestRoute[j]
		if a.AvgMs != b.AvgMs {
			return a.AvgMs > b.AvgMs
		}
		return a.Name < b.Name
	})
	if len(sum.SlowestRoute) > topN {
		sum.SlowestRoute = sum.SlowestRoute[:topN]
	}

	sum.PageEvents = make([]EventCount, 0, len(events))
	for name, count := range events {
		sum.PageEvents = append(sum.PageEvents, EventCount{Name: name, Count: count})
	}
	sort.Slice(sum.PageEvents, func(i, j int) bool {
		a, b := sum.PageEvents[i], sum.PageEvents[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return sum
}

// percentile interpolates the p-th percentile of sorted.
// PRE: sorted is non-empty and ascending
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
