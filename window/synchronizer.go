package window

import "time"

// clock is the time source of a host that paces its own loop. Ticks are in
// microseconds.
type clock interface {
	getTicks() int64
	delay(us int64)
}

// TimeSynchronizer sleeps off whatever is left of each update interval.
type TimeSynchronizer struct {
	prevTicks, usPerFrame int64
	clk                   clock
}

func NewTimeSynchronizer(clk clock, interval time.Duration) *TimeSynchronizer {
	return &TimeSynchronizer{
		prevTicks:  clk.getTicks(),
		usPerFrame: interval.Microseconds(),
		clk:        clk,
	}
}

func (ts *TimeSynchronizer) MaySleep() {
	cur := ts.clk.getTicks()
	if cur < ts.prevTicks {
		return
	}
	diff := ts.usPerFrame - (cur - ts.prevTicks)
	if diff > 1000 { // Larger than 1ms
		ts.clk.delay(diff)
	}
	if cur-ts.prevTicks > 4*ts.usPerFrame {
		// Fell far behind; do not try to catch up frame by frame.
		ts.prevTicks = cur
		return
	}
	ts.prevTicks += ts.usPerFrame
}
