package diagnostics

import (
	"testing"
	"time"
)

func TestTraceBufferDefaults(t *testing.T) {
	b := NewTraceBuffer(0, 0)
	if b.Capacity() != 240 {
		t.Errorf("Capacity = %d, want 240", b.Capacity())
	}
	if b.Threshold() != 16667*time.Microsecond {
		t.Errorf("Threshold = %v", b.Threshold())
	}
}

func TestTraceBufferRecordsSamples(t *testing.T) {
	b := NewTraceBuffer(8, 10*time.Millisecond)
	b.TraceTick(0, time.Millisecond, 2*time.Millisecond, true)
	b.TraceTick(1, time.Millisecond, 2*time.Millisecond, true)

	snap := b.Snapshot()
	if len(snap.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(snap.Samples))
	}
	if snap.Samples[0].FrameNumber != 0 || snap.Samples[1].FrameNumber != 1 {
		t.Errorf("sample order = %d,%d", snap.Samples[0].FrameNumber, snap.Samples[1].FrameNumber)
	}
	if snap.Samples[0].JitterMs != 1 || snap.Samples[0].RenderMs != 2 {
		t.Errorf("sample = %+v", snap.Samples[0])
	}
}

func TestTraceBufferWrapsChronologically(t *testing.T) {
	b := NewTraceBuffer(4, 10*time.Millisecond)
	for frame := range 10 {
		b.TraceTick(frame, 0, time.Millisecond, true)
	}

	snap := b.Snapshot()
	if len(snap.Samples) != 4 {
		t.Fatalf("samples = %d, want 4", len(snap.Samples))
	}
	// Oldest surviving sample first.
	for i, want := range []int{6, 7, 8, 9} {
		if snap.Samples[i].FrameNumber != want {
			t.Errorf("sample %d frame = %d, want %d", i, snap.Samples[i].FrameNumber, want)
		}
	}
}

func TestTraceBufferCounters(t *testing.T) {
	b := NewTraceBuffer(4, 10*time.Millisecond)
	b.TraceTick(0, 0, time.Millisecond, true)
	b.TraceTick(1, 15*time.Millisecond, time.Millisecond, true)
	b.TraceTick(2, 0, time.Millisecond, false)
	b.TraceTick(3, 20*time.Millisecond, time.Millisecond, false)

	snap := b.Snapshot()
	if snap.DroppedFrames != 2 {
		t.Errorf("DroppedFrames = %d, want 2", snap.DroppedFrames)
	}
	if snap.LateTicks != 2 {
		t.Errorf("LateTicks = %d, want 2", snap.LateTicks)
	}
	if snap.ThresholdMs != 10 {
		t.Errorf("ThresholdMs = %v, want 10", snap.ThresholdMs)
	}

	// Counters survive ring wrap-around.
	for range 10 {
		b.TraceTick(0, 0, time.Millisecond, true)
	}
	if got := b.Snapshot().DroppedFrames; got != 2 {
		t.Errorf("DroppedFrames after wrap = %d, want 2", got)
	}
}

func TestTraceBufferEmptySnapshot(t *testing.T) {
	b := NewTraceBuffer(4, 10*time.Millisecond)
	snap := b.Snapshot()
	if len(snap.Samples) != 0 {
		t.Errorf("samples = %d, want 0", len(snap.Samples))
	}
	if snap.ThresholdMs != 10 {
		t.Errorf("ThresholdMs = %v, want 10", snap.ThresholdMs)
	}
}
