package core

import (
	"math"
	"math/rand"
)

// LossSimulator decides which snapshots never leave the server. It drops
// each one with a fixed probability and, every `every` seconds, drops
// everything for `length` seconds.
type LossSimulator struct {
	rate   float64
	every  float64
	length float64
	rng    *rand.Rand

	elapsed float64
	dropped int
	sent    int
}

func NewLossSimulator(rate, every, length float64, rng *rand.Rand) *LossSimulator {
	return &LossSimulator{rate: rate, every: every, length: length, rng: rng}
}

// Advance moves the simulator's clock forward.
func (l *LossSimulator) Advance(dt float64) {
	l.elapsed += dt
}

// InOutage reports whether the current time falls in the tail end of an
// outage period.
func (l *LossSimulator) InOutage() bool {
	if l.every <= 0 || l.length <= 0 {
		return false
	}
	return math.Mod(l.elapsed, l.every) >= l.every-l.length
}

// Drop decides the fate of the snapshot about to be sent.
func (l *LossSimulator) Drop() bool {
	drop := l.InOutage() || (l.rate > 0 && l.rng.Float64() < l.rate)
	if drop {
		l.dropped++
	} else {
		l.sent++
	}
	return drop
}

// Counts returns how many snapshots were sent and dropped.
func (l *LossSimulator) Counts() (sent, dropped int) {
	return l.sent, l.dropped
}
