// Package replay drives smoothing agents from a recorded trace so different
// tunings can be compared offline on the same network conditions.
package replay

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/automoto/netsmooth/wire"
)

// AgentReport summarizes how one agent was smoothed.
type AgentReport struct {
	ID    uint64
	Stats smoothing.Stats

	// Position error measured at each accepted snapshot.
	MeanError float64
	MaxError  float64
}

type Report struct {
	Frames   int
	Skipped  int     // Malformed frames
	Duration float64 // Seconds of trace covered
	Ticks    int
	Agents   []AgentReport // Ordered by ID
}

type agentRun struct {
	agent   *smoothing.Agent
	applied int
	errSum  float64
	errMax  float64
	samples int
}

// Run reads every frame from r and replays it at fixed dt steps. Frames are
// delivered on the first tick whose clock has reached their timestamp.
func Run(r *wire.TraceReader, cfg config.SmoothingConfig, dt float64) (Report, error) {
	if dt <= 0 {
		return Report{}, fmt.Errorf("dt %v must be positive", dt)
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	frames, skipped, err := readAll(r)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Frames: len(frames), Skipped: skipped}
	if len(frames) == 0 {
		return rep, nil
	}

	runs := map[uint64]*agentRun{}
	start := frames[0].Time
	end := frames[len(frames)-1].Time
	clock := start
	next := 0

	for clock <= end+dt {
		for ; next < len(frames) && frames[next].Time <= clock; next++ {
			if err := deliver(runs, frames[next], cfg); err != nil {
				return rep, err
			}
		}
		for _, run := range runs {
			run.tick(dt)
		}
		rep.Ticks++
		clock += dt
	}
	rep.Duration = end - start

	for id, run := range runs {
		ar := AgentReport{ID: id, Stats: run.agent.Stats(), MaxError: run.errMax}
		if run.samples > 0 {
			ar.MeanError = run.errSum / float64(run.samples)
		}
		rep.Agents = append(rep.Agents, ar)
	}
	slices.SortFunc(rep.Agents, func(a, b AgentReport) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return rep, nil
}

// readAll collects frames in time order. Frames that decode badly are
// skipped; a broken stream is an error.
func readAll(r *wire.TraceReader) ([]wire.Frame, int, error) {
	var frames []wire.Frame
	skipped := 0
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var decodeErr *wire.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.Field != "" {
			log.Printf("[replay] skipping frame %d: %v", len(frames)+skipped, decodeErr)
			skipped++
			continue
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read trace: %w", err)
		}
		frames = append(frames, f)
	}
	slices.SortStableFunc(frames, func(a, b wire.Frame) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return frames, skipped, nil
}

func deliver(runs map[uint64]*agentRun, f wire.Frame, cfg config.SmoothingConfig) error {
	run, ok := runs[f.AgentID]
	switch f.Kind {
	case wire.FrameSnapshot:
		if !ok {
			p := f.Snapshot.Position
			agent, err := smoothing.NewAgent(cfg, smoothing.WithStartPosition(gamemath.Vec3{X: p.X, Z: p.Z}))
			if err != nil {
				return err
			}
			run = &agentRun{agent: agent}
			runs[f.AgentID] = run
		}
		run.agent.PushSnapshot(f.Snapshot)
	case wire.FrameJump:
		if ok {
			run.agent.PushJump()
		}
	}
	return nil
}

func (run *agentRun) tick(dt float64) {
	run.agent.Tick(dt)
	applied := run.agent.Stats().Applied
	if applied == run.applied {
		return
	}
	run.applied = applied
	e := run.agent.State().PositionError.Len()
	run.errSum += e
	run.errMax = max(run.errMax, e)
	run.samples++
}
