package alpha

import (
	"github.com/swarmworks/alphaswarm/model"
)

// RuleEnv wraps the simulation state and exposes helper methods callable
// from expr conditions. Telemetry is computed once per regulation pass so
// every rule in the pass sees the same figures.
type RuleEnv struct {
	State  *model.State
	TM     model.Telemetry
	Memory map[string]any
}

func (e RuleEnv) Instability() float64 { return e.TM.Instability }
func (e RuleEnv) Completion() float64  { return e.TM.Completion }
func (e RuleEnv) AvgFuel() float64     { return e.TM.AvgFuel }

func (e RuleEnv) Free() int      { return e.TM.Free }
func (e RuleEnv) Builders() int  { return e.TM.Builders }
func (e RuleEnv) Beacons() int   { return e.TM.Beacons }
func (e RuleEnv) Dead() int      { return e.TM.Dead }
func (e RuleEnv) Weak() int      { return e.TM.Weak }
func (e RuleEnv) Stationed() int { return e.TM.Stationed }

func (e RuleEnv) Tick() int { return e.State.Tick }

// Every is true on ticks divisible by n, gating periodic rules.
func (e RuleEnv) Every(n int) bool {
	return n > 0 && e.State.Tick%n == 0
}

// Chance draws from the state's seeded RNG, so probabilistic rules stay
// reproducible given a fixed seed and evaluation order.
func (e RuleEnv) Chance(p float64) bool {
	return e.State.Rand.Float64() < p
}

// TicksSinceStrategyChange reads the memory stamp written by the
// strategy-rotation action. A run starts at zero so the first rotation
// waits a full interval.
func (e RuleEnv) TicksSinceStrategyChange() int {
	return e.State.Tick - memTick(e.Memory, "strategyTick")
}

// TicksSinceFormation reads the stamp written on successful triplet
// formation, enforcing the minimum inter-formation interval.
func (e RuleEnv) TicksSinceFormation() int {
	return e.State.Tick - memTick(e.Memory, "formationTick")
}

func memTick(memory map[string]any, key string) int {
	if v, ok := memory[key].(int); ok {
		return v
	}
	return 0
}
