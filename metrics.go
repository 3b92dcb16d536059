package pipingester

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks ingestion and validation counters using lock-free
// atomics. All methods are safe for concurrent use.
type Metrics struct {
	ingestsTotal     atomic.Uint64
	ingestsSucceeded atomic.Uint64

	fetchTimeTotal atomic.Uint64 // nanoseconds
	fetchTimeMin   atomic.Uint64
	fetchTimeMax   atomic.Uint64

	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	phaseTiming sync.Map // map[string]*phaseMetrics
}

type phaseMetrics struct {
	invocations atomic.Uint64
	totalTime   atomic.Uint64 // nanoseconds
	issuesFound atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Min starts at max uint64 so the first sample becomes the minimum.
	m.fetchTimeMin.Store(^uint64(0))
	return m
}

// RecordIngest records a completed ingestion attempt.
func (m *Metrics) RecordIngest(fetchDuration time.Duration, ok bool) {
	m.ingestsTotal.Add(1)
	if ok {
		m.ingestsSucceeded.Add(1)
	}

	ns := uint64(fetchDuration.Nanoseconds())
	m.fetchTimeTotal.Add(ns)

	for {
		old := m.fetchTimeMin.Load()
		if ns >= old || m.fetchTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.fetchTimeMax.Load()
		if ns <= old || m.fetchTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordValidation records a completed validation.
func (m *Metrics) RecordValidation(valid bool) {
	m.validationsTotal.Add(1)
	if valid {
		m.validationsValid.Add(1)
	}
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit() { m.cacheHits.Add(1) }

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss() { m.cacheMisses.Add(1) }

// RecordPhase records timing for one validation phase.
func (m *Metrics) RecordPhase(name string, duration time.Duration, issuesFound int) {
	pm := m.getOrCreatePhase(name)
	pm.invocations.Add(1)
	pm.totalTime.Add(uint64(duration.Nanoseconds()))
	pm.issuesFound.Add(uint64(issuesFound))
}

func (m *Metrics) getOrCreatePhase(name string) *phaseMetrics {
	if v, ok := m.phaseTiming.Load(name); ok {
		return v.(*phaseMetrics)
	}
	actual, _ := m.phaseTiming.LoadOrStore(name, &phaseMetrics{})
	return actual.(*phaseMetrics)
}

// IngestsTotal returns the number of ingestion attempts.
func (m *Metrics) IngestsTotal() uint64 { return m.ingestsTotal.Load() }

// IngestsSucceeded returns the number of successful ingestions.
func (m *Metrics) IngestsSucceeded() uint64 { return m.ingestsSucceeded.Load() }

// ValidationsTotal returns the number of validations performed.
func (m *Metrics) ValidationsTotal() uint64 { return m.validationsTotal.Load() }

// ValidationsValid returns the number of validations that passed.
func (m *Metrics) ValidationsValid() uint64 { return m.validationsValid.Load() }

// CacheHits returns the number of cache hits recorded.
func (m *Metrics) CacheHits() uint64 { return m.cacheHits.Load() }

// CacheMisses returns the number of cache misses recorded.
func (m *Metrics) CacheMisses() uint64 { return m.cacheMisses.Load() }

// AvgFetchTime returns the mean fetch duration.
func (m *Metrics) AvgFetchTime() time.Duration {
	total := m.ingestsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.fetchTimeTotal.Load() / total)
}

// MinFetchTime returns the fastest observed fetch, or 0 before any
// sample.
func (m *Metrics) MinFetchTime() time.Duration {
	v := m.fetchTimeMin.Load()
	if v == ^uint64(0) {
		return 0
	}
	return time.Duration(v)
}

// MaxFetchTime returns the slowest observed fetch.
func (m *Metrics) MaxFetchTime() time.Duration {
	return time.Duration(m.fetchTimeMax.Load())
}

// PhaseSnapshot summarizes one validation phase.
type PhaseSnapshot struct {
	Name        string        `json:"name"`
	Invocations uint64        `json:"invocations"`
	TotalTime   time.Duration `json:"totalTime"`
	IssuesFound uint64        `json:"issuesFound"`
}

// Snapshot is a point-in-time copy of all metrics, suitable for JSON
// output.
type Snapshot struct {
	IngestsTotal     uint64          `json:"ingestsTotal"`
	IngestsSucceeded uint64          `json:"ingestsSucceeded"`
	ValidationsTotal uint64          `json:"validationsTotal"`
	ValidationsValid uint64          `json:"validationsValid"`
	CacheHits        uint64          `json:"cacheHits"`
	CacheMisses      uint64          `json:"cacheMisses"`
	AvgFetchTime     time.Duration   `json:"avgFetchTime"`
	MinFetchTime     time.Duration   `json:"minFetchTime"`
	MaxFetchTime     time.Duration   `json:"maxFetchTime"`
	Phases           []PhaseSnapshot `json:"phases,omitempty"`
}

// Snapshot captures the current metric values.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		IngestsTotal:     m.IngestsTotal(),
		IngestsSucceeded: m.IngestsSucceeded(),
		ValidationsTotal: m.ValidationsTotal(),
		ValidationsValid: m.ValidationsValid(),
		CacheHits:        m.CacheHits(),
		CacheMisses:      m.CacheMisses(),
		AvgFetchTime:     m.AvgFetchTime(),
		MinFetchTime:     m.MinFetchTime(),
		MaxFetchTime:     m.MaxFetchTime(),
	}

	m.phaseTiming.Range(func(k, v any) bool {
		pm := v.(*phaseMetrics)
		s.Phases = append(s.Phases, PhaseSnapshot{
			Name:        k.(string),
			Invocations: pm.invocations.Load(),
			TotalTime:   time.Duration(pm.totalTime.Load()),
			IssuesFound: pm.issuesFound.Load(),
		})
		return true
	})

	return s
}
