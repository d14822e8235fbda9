// Frame loop driving the simulation from wall-clock time.
package sim

import (
	"log/slog"
	"time"
)

// Engine invokes one simulation step per frame with the measured delta
// time, scaled by Speed. The simulation itself never spawns threads or
// blocks; the engine is the host loop around it.
type Engine struct {
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Target frame interval
	Running  bool

	// OnStep receives the scaled delta time in seconds, once per frame.
	OnStep func(dt float64)

	// OnSecond fires roughly once per wall-clock second for sampling
	// and summaries.
	OnSecond func()
}

// NewEngine creates an engine at real-time speed and 20 frames per second.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: 50 * time.Millisecond,
	}
}

// Run starts the frame loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "interval", e.Interval, "speed", e.Speed)

	last := time.Now()
	var sinceSecond time.Duration

	for e.Running {
		if e.Speed <= 0 {
			// Paused — re-anchor the clock so resume doesn't lurch.
			time.Sleep(100 * time.Millisecond)
			last = time.Now()
			continue
		}

		start := time.Now()
		dt := start.Sub(last).Seconds() * e.Speed
		last = start

		if e.OnStep != nil {
			e.OnStep(dt)
		}

		sinceSecond += time.Duration(dt * float64(time.Second))
		if sinceSecond >= time.Second {
			sinceSecond = 0
			if e.OnSecond != nil {
				e.OnSecond()
			}
		}

		elapsed := time.Since(start)
		if elapsed < e.Interval {
			time.Sleep(e.Interval - elapsed)
		}
	}

	slog.Info("simulation engine stopped")
}

// Stop halts the frame loop.
func (e *Engine) Stop() {
	e.Running = false
}
