// Package sim orchestrates one simulation tick in the fixed subsystem
// order: regulation, agent steps, allocation/construction, weak-agent
// aid. Everything runs to completion synchronously within the tick.
package sim

import (
	"log/slog"

	"github.com/swarmworks/alphaswarm/alpha"
	"github.com/swarmworks/alphaswarm/model"
	"github.com/swarmworks/alphaswarm/swarm"
)

// Runner couples a simulation state with its controller.
type Runner struct {
	State *model.State
	Alpha *alpha.Controller
}

// NewRunner seeds the initial build priorities and forms the first triad
// so construction can start immediately, matching a fresh swarm launch.
func NewRunner(st *model.State, ctl *alpha.Controller) *Runner {
	alpha.Recompute(st, alpha.StrategyBottomUp)
	if trip, ok := swarm.FormTriplet(st, st.BondRadius); ok {
		slog.Debug("initial triplet", "builder", trip.Builder)
	}
	return &Runner{State: st, Alpha: ctl}
}

// Step advances the world by one tick. Regulation observes the state as
// of the end of the previous tick; agents step in arena order so runs
// are deterministic for a fixed seed.
func (r *Runner) Step() {
	st := r.State
	st.Tick++

	r.Alpha.Regulate(st)

	for i := range st.Agents {
		swarm.Step(st, model.Handle(i))
	}

	swarm.BuildStep(st)
	swarm.AidWeak(st)
}

// Done reports the only terminal condition: every target built.
func (r *Runner) Done() bool {
	return r.State.Completion() >= 1
}
