package model

import "math/rand"

// State is the whole simulation world, threaded explicitly through the
// controller, allocator and rescue passes. Nothing in the core holds
// ambient global state; given the same seed a run is deterministic.
type State struct {
	Tick    int
	Agents  []Agent
	Targets []Target
	Cfg     Config

	// BondRadius and Strategy are owned by the Alpha controller but live
	// here so telemetry snapshots can report them.
	BondRadius float64
	Strategy   string

	// Rand is the only source of nondeterminism in the core.
	Rand *rand.Rand
}

// NewState spawns the population with randomized kinematics and full
// fuel, and adopts the given target positions. points is typically the
// output of the shape generator but the core doesn't care.
func NewState(cfg Config, points []Vec3, rng *rand.Rand) *State {
	cfg.Validate()
	st := &State{
		Cfg:        cfg,
		BondRadius: cfg.BondRadius,
		Rand:       rng,
	}

	st.Agents = make([]Agent, cfg.NumAgents)
	for i := range st.Agents {
		st.Agents[i] = Agent{
			Pos: Vec3{
				X: rng.Float64()*80 - 40,
				Y: rng.Float64()*35 - 5,
				Z: rng.Float64()*80 - 40,
			},
			Vel:          st.RandomVel(),
			Fuel:         cfg.FuelTotal,
			Status:       StatusFree,
			Bond:         [2]Handle{NoAgent, NoAgent},
			RescueTarget: NoAgent,
			Target:       NoTarget,
		}
	}

	st.Targets = make([]Target, len(points))
	for i, p := range points {
		st.Targets[i] = Target{Pos: p, Owner: NoAgent}
	}
	return st
}

// RandomVel draws a fresh roaming velocity: full range on the horizontal
// axes, damped vertically.
func (st *State) RandomVel() Vec3 {
	return Vec3{
		X: st.Rand.Float64()*2 - 1,
		Y: st.Rand.Float64()*0.6 - 0.3,
		Z: st.Rand.Float64()*2 - 1,
	}
}

// Agent returns the agent for a handle, or nil if the handle is empty.
func (st *State) Agent(h Handle) *Agent {
	if h == NoAgent || int(h) >= len(st.Agents) {
		return nil
	}
	return &st.Agents[h]
}

// AddFuel credits an agent, capped at the full tank.
func (st *State) AddFuel(a *Agent, amount float64) {
	a.Fuel += amount
	if a.Fuel > st.Cfg.FuelTotal {
		a.Fuel = st.Cfg.FuelTotal
	}
}

// DrainFuel debits an agent, floored at zero.
func (st *State) DrainFuel(a *Agent, amount float64) {
	a.Fuel -= amount
	if a.Fuel < 0 {
		a.Fuel = 0
	}
}

// Centroid returns the mean agent position.
func (st *State) Centroid() Vec3 {
	var sum Vec3
	for i := range st.Agents {
		sum = sum.Add(st.Agents[i].Pos)
	}
	return sum.Scale(1 / float64(len(st.Agents)))
}

// CountStatus counts agents currently in the given status.
func (st *State) CountStatus(s Status) int {
	n := 0
	for i := range st.Agents {
		if st.Agents[i].Status == s {
			n++
		}
	}
	return n
}

// BuiltTargets counts completed target points.
func (st *State) BuiltTargets() int {
	n := 0
	for i := range st.Targets {
		if st.Targets[i].Built {
			n++
		}
	}
	return n
}

// Completion is the fraction of targets built, 1.0 when there are none.
func (st *State) Completion() float64 {
	if len(st.Targets) == 0 {
		return 1
	}
	return float64(st.BuiltTargets()) / float64(len(st.Targets))
}
