package testing

import "github.com/go-drift/frameclock/pkg/animation"

// RecordingListener captures timeline lifecycle events in order, so tests
// can assert on exact event sequences.
type RecordingListener struct {
	// Events holds event names in firing order: "start", "stop",
	// "repeat", "frame".
	Events []string

	// Frames holds the frame numbers passed to OnAnimationFrame.
	Frames []int

	Starts  int
	Stops   int
	Repeats int
}

var _ animation.Listener = (*RecordingListener)(nil)

func (l *RecordingListener) OnAnimationStart(*animation.Timeline) {
	l.Starts++
	l.Events = append(l.Events, "start")
}

func (l *RecordingListener) OnAnimationStop(*animation.Timeline) {
	l.Stops++
	l.Events = append(l.Events, "stop")
}

func (l *RecordingListener) OnAnimationRepeat(*animation.Timeline) {
	l.Repeats++
	l.Events = append(l.Events, "repeat")
}

func (l *RecordingListener) OnAnimationFrame(_ *animation.Timeline, frameNumber int) {
	l.Frames = append(l.Frames, frameNumber)
	l.Events = append(l.Events, "frame")
}

// Reset clears all recorded events.
func (l *RecordingListener) Reset() {
	l.Events = nil
	l.Frames = nil
	l.Starts, l.Stops, l.Repeats = 0, 0, 0
}
