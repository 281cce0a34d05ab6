package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Stage names used in latency stats and metrics.
const (
	StageParse   = "parse"
	StageSegment = "segment"
	StageRank    = "rank"
	StageTotal   = "total"
)

var stages = []string{StageParse, StageSegment, StageRank, StageTotal}

// Timings is how long each stage of one analysis took.
type Timings struct {
	Parse   time.Duration `json:"parse"`
	Segment time.Duration `json:"segment"`
	Rank    time.Duration `json:"rank"`
	Total   time.Duration `json:"total"`
}

func (t Timings) byStage() map[string]time.Duration {
	return map[string]time.Duration{
		StageParse:   t.Parse,
		StageSegment: t.Segment,
		StageRank:    t.Rank,
		StageTotal:   t.Total,
	}
}

type sample struct {
	timestamp time.Time
	timings   Timings
}

// StatsSnapshot is a point-in-time aggregate of one stage's latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats tracks per-stage analysis latencies within a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewLatencyStats(maxAge time.Duration) *LatencyStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *LatencyStats) Record(t Timings) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, timings: t})
}

// Snapshot aggregates the live samples per stage. Every stage is present,
// zero-valued when there are no samples.
func (s *LatencyStats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	out := make(map[string]StatsSnapshot, len(stages))
	for _, stage := range stages {
		values := make([]int64, 0, len(s.samples))
		for _, sm := range s.samples {
			values = append(values, max(sm.timings.byStage()[stage].Milliseconds(), 0))
		}
		out[stage] = aggregate(values)
	}
	return out
}

func aggregate(values []int64) StatsSnapshot {
	if len(values) == 0 {
		return StatsSnapshot{}
	}
	var sum int64
	for _, v := range values {
		sum += v
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
