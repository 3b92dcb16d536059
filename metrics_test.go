package pipingester

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsRecordIngest(t *testing.T) {
	m := NewMetrics()

	m.RecordIngest(10*time.Millisecond, true)
	m.RecordIngest(30*time.Millisecond, false)
	m.RecordIngest(20*time.Millisecond, true)

	if got := m.IngestsTotal(); got != 3 {
		t.Errorf("IngestsTotal() = %d; want 3", got)
	}
	if got := m.IngestsSucceeded(); got != 2 {
		t.Errorf("IngestsSucceeded() = %d; want 2", got)
	}
	if got := m.MinFetchTime(); got != 10*time.Millisecond {
		t.Errorf("MinFetchTime() = %v; want 10ms", got)
	}
	if got := m.MaxFetchTime(); got != 30*time.Millisecond {
		t.Errorf("MaxFetchTime() = %v; want 30ms", got)
	}
	if got := m.AvgFetchTime(); got != 20*time.Millisecond {
		t.Errorf("AvgFetchTime() = %v; want 20ms", got)
	}
}

func TestMetricsZeroState(t *testing.T) {
	m := NewMetrics()
	if m.MinFetchTime() != 0 {
		t.Errorf("MinFetchTime() = %v; want 0 before samples", m.MinFetchTime())
	}
	if m.AvgFetchTime() != 0 {
		t.Errorf("AvgFetchTime() = %v; want 0 before samples", m.AvgFetchTime())
	}
}

func TestMetricsValidationAndCache(t *testing.T) {
	m := NewMetrics()

	m.RecordValidation(true)
	m.RecordValidation(false)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCacheMiss()

	s := m.Snapshot()
	if s.ValidationsTotal != 2 || s.ValidationsValid != 1 {
		t.Errorf("validations = %d/%d; want 2/1", s.ValidationsValid, s.ValidationsTotal)
	}
	if s.CacheHits != 1 || s.CacheMisses != 2 {
		t.Errorf("cache = %d hits %d misses; want 1/2", s.CacheHits, s.CacheMisses)
	}
}

func TestMetricsPhaseSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordPhase("version", time.Millisecond, 1)
	m.RecordPhase("version", time.Millisecond, 0)
	m.RecordPhase("metadata", time.Millisecond, 2)

	s := m.Snapshot()
	if len(s.Phases) != 2 {
		t.Fatalf("Phases = %v; want 2 entries", s.Phases)
	}
	for _, p := range s.Phases {
		if p.Name == "version" {
			if p.Invocations != 2 || p.IssuesFound != 1 {
				t.Errorf("version phase = %+v; want 2 invocations, 1 issue", p)
			}
		}
	}
}

func TestMetricsConcurrentRecording(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordIngest(time.Millisecond, true)
				m.RecordValidation(true)
			}
		}()
	}
	wg.Wait()

	if got := m.IngestsTotal(); got != 800 {
		t.Errorf("IngestsTotal() = %d; want 800", got)
	}
	if got := m.ValidationsTotal(); got != 800 {
		t.Errorf("ValidationsTotal() = %d; want 800", got)
	}
}
