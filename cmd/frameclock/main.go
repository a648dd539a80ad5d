// Command frameclock runs a configured animation headless and reports
// timing statistics. It is the quickest way to see the scheduler's
// drop-frame and drift-correction behavior, and it can expose the tick
// trace over HTTP for inspection while running.
//
// Usage:
//
//	frameclock [-dir path] [-ticks n] [-for duration] [-debug port] [-v]
//
// Configuration is read from frameclock.yaml in the target directory if
// present; flags override it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-drift/frameclock/cmd/frameclock/internal/config"
	"github.com/go-drift/frameclock/pkg/animation"
	"github.com/go-drift/frameclock/pkg/diagnostics"
	"github.com/go-drift/frameclock/pkg/errors"
	"github.com/go-drift/frameclock/pkg/graphics"
	"github.com/go-drift/frameclock/pkg/sources"
)

func main() {
	if err := run(); err != nil {
		(&errors.LogHandler{}).HandleError(asError(err))
		os.Exit(1)
	}
}

func asError(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.E("frameclock.run", errors.KindUnknown, err)
}

// completionListener flags natural completion of a finite animation.
type completionListener struct {
	animation.BaseListener
	finished bool
}

func (l *completionListener) OnAnimationStop(*animation.Timeline) {
	l.finished = true
}

func run() error {
	dir := flag.String("dir", ".", "directory containing frameclock.yaml")
	maxTicks := flag.Int("ticks", 0, "stop after this many render ticks (0 = unlimited)")
	runFor := flag.Duration("for", 5*time.Second, "maximum wall-clock run time")
	debugPort := flag.Int("debug", 0, "diagnostics server port (overrides config; -1 for ephemeral)")
	verbose := flag.Bool("v", false, "log every render tick")
	flag.Parse()

	resolved, err := config.Resolve(*dir)
	if err != nil {
		return err
	}
	if *debugPort != 0 {
		resolved.DebugPort = *debugPort
	}

	source, err := sources.NewGradientWithDurations(
		[]graphics.Color{graphics.ColorRed, graphics.ColorGreen, graphics.ColorBlue},
		resolved.FrameDurations,
		resolved.LoopCount,
	)
	if err != nil {
		return err
	}
	source.SetMotion(animation.SineInOut)

	surface := graphics.NewImageSurface(resolved.Width, resolved.Height)
	trace := diagnostics.NewTraceBuffer(resolved.TraceSamples, 0)

	var server *diagnostics.Server
	if resolved.DebugPort != 0 {
		port := resolved.DebugPort
		if port < 0 {
			port = 0
		}
		server = diagnostics.NewServer(trace, &errors.LogHandler{Verbose: *verbose})
		actual, err := server.Start(port)
		if err != nil {
			return err
		}
		defer server.Stop()
		fmt.Printf("diagnostics on http://localhost:%d/timeline\n", actual)
	}

	// The redraw channel is the host invalidation queue: ticks land here
	// and the loop below renders them on this goroutine.
	redraw := make(chan struct{}, 1)
	invalidate := func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	}

	listener := &completionListener{}
	timeline := animation.NewTimeline(source, invalidate)
	timeline.SetListener(listener)
	timeline.SetTickTracer(trace)

	fmt.Printf("animation: %d frames, loop %v, %s per loop\n",
		timeline.FrameCount(), loopLabel(timeline), timeline.LoopDuration())

	timeline.Start()
	if !timeline.IsRunning() {
		return errors.E("frameclock.run", errors.KindSource,
			fmt.Errorf("animation with %d frames cannot run", timeline.FrameCount()))
	}

	deadline := time.After(*runFor)
	ticks := 0
loop:
	for {
		select {
		case <-redraw:
			timeline.Render(surface)
			ticks++
			if *verbose {
				fmt.Printf("tick %d: dropped=%d\n", ticks, timeline.DroppedFrameCount())
			}
			if listener.finished {
				break loop
			}
			if *maxTicks > 0 && ticks >= *maxTicks {
				break loop
			}
		case <-deadline:
			break loop
		}
	}
	timeline.Stop()

	snapshot := trace.Snapshot()
	fmt.Printf("rendered %d ticks, dropped %d frames, %d late ticks (>%.1fms jitter)\n",
		ticks, timeline.DroppedFrameCount(), snapshot.LateTicks, snapshot.ThresholdMs)
	return nil
}

func loopLabel(t *animation.Timeline) string {
	if t.IsInfinite() {
		return "forever"
	}
	return fmt.Sprintf("%dx", t.LoopCount())
}
