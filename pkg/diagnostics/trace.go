// Package diagnostics records per-tick timing samples from animation
// timelines and serves them over HTTP for inspection.
package diagnostics

import (
	"sync"
	"time"

	"github.com/go-drift/frameclock/pkg/animation"
)

const (
	traceSamplesDefault = 240
	// defaultLateThreshold is one 60fps frame budget.
	defaultLateThreshold = 16667 * time.Microsecond
)

// TickSample is a single render tick trace sample.
type TickSample struct {
	Timestamp   int64   `json:"ts"`
	FrameNumber int     `json:"frame"`
	JitterMs    float64 `json:"jitterMs"`
	RenderMs    float64 `json:"renderMs"`
	Drawn       bool    `json:"drawn"`
}

// TickTimeline is the debug server response shape.
type TickTimeline struct {
	Samples       []TickSample `json:"samples"`
	DroppedFrames int          `json:"droppedFrames"`
	LateTicks     int          `json:"lateTicks"`
	ThresholdMs   float64      `json:"thresholdMs"`
}

// TraceBuffer stores recent tick samples in a ring buffer. It implements
// animation.TickTracer, so it can be attached directly to a timeline with
// SetTickTracer. All methods are safe for concurrent use.
type TraceBuffer struct {
	mu        sync.RWMutex
	samples   []TickSample
	index     int
	count     int
	dropped   int
	late      int
	threshold time.Duration
}

var _ animation.TickTracer = (*TraceBuffer)(nil)

// NewTraceBuffer creates a trace buffer. Non-positive capacity or
// threshold values fall back to defaults (240 samples, one 60fps frame
// budget).
func NewTraceBuffer(capacity int, lateThreshold time.Duration) *TraceBuffer {
	if capacity <= 0 {
		capacity = traceSamplesDefault
	}
	if lateThreshold <= 0 {
		lateThreshold = defaultLateThreshold
	}
	return &TraceBuffer{
		samples:   make([]TickSample, capacity),
		threshold: lateThreshold,
	}
}

// TraceTick records one render tick.
func (b *TraceBuffer) TraceTick(frameNumber int, jitter, renderTime time.Duration, drawn bool) {
	sample := TickSample{
		Timestamp:   time.Now().UnixMilli(),
		FrameNumber: frameNumber,
		JitterMs:    durationToMillis(jitter),
		RenderMs:    durationToMillis(renderTime),
		Drawn:       drawn,
	}
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if !drawn {
		b.dropped++
	}
	if jitter > b.threshold {
		b.late++
	}
	b.mu.Unlock()
}

// Capacity returns the buffer capacity.
func (b *TraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Threshold returns the late-tick threshold.
func (b *TraceBuffer) Threshold() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.threshold
}

// Snapshot returns a chronological copy of samples and stats.
func (b *TraceBuffer) Snapshot() TickTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return TickTimeline{ThresholdMs: durationToMillis(b.threshold)}
	}

	result := make([]TickSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return TickTimeline{
		Samples:       result,
		DroppedFrames: b.dropped,
		LateTicks:     b.late,
		ThresholdMs:   durationToMillis(b.threshold),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
