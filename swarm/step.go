// Package swarm implements the per-agent state machine, the triad
// resource-sharing protocol, the target allocator and the rescue
// coordinator. All operations are synchronous single-pass mutations of
// model.State; fallible ones report success instead of erroring.
package swarm

import (
	"log/slog"

	"github.com/swarmworks/alphaswarm/model"
)

// Step advances one agent by one tick: movement, fuel drain and status
// transitions. Target-directed builder movement and construction happen
// in the allocator pass, after every agent has stepped.
func Step(st *model.State, h model.Handle) {
	a := st.Agent(h)
	cfg := &st.Cfg

	switch a.Status {
	case model.StatusStationed:
		a.Vel = model.Vec3{}
		st.DrainFuel(a, cfg.BaseDrain*cfg.StationDrain)
		if a.Fuel <= 0 {
			a.Status = model.StatusDead
		}
		return

	case model.StatusBeacon:
		// Beacons hold position no matter what pushed them.
		a.Vel = model.Vec3{}
		st.DrainFuel(a, cfg.BaseDrain*cfg.BeaconDrain)
		if a.Fuel <= 0 {
			a.Status = model.StatusDead
			a.Role = model.RoleNone
			slog.Debug("beacon exhausted", "agent", h)
		}
		return

	case model.StatusDead:
		a.Vel = model.Vec3{}
		return

	case model.StatusBuilder:
		// Hold formation at the beacon midpoint until the allocator
		// hands out a target; then the allocator steers.
		if a.Bonded() {
			c1 := st.Agent(a.Bond[0])
			c2 := st.Agent(a.Bond[1])
			MoveToward(a, model.Midpoint(c1.Pos, c2.Pos), cfg.Speed)
		}

	case model.StatusRescue:
		if v := st.Agent(a.RescueTarget); v != nil {
			MoveToward(a, v.Pos, cfg.Speed)
		}

	case model.StatusReturning, model.StatusWeak:
		MoveToward(a, cfg.BasePos, cfg.Speed)

	case model.StatusFree:
		a.Pos = a.Pos.Add(a.Vel.Norm().Scale(cfg.Speed))
	}

	reflect(a, cfg.WorldBound)
	st.DrainFuel(a, cfg.BaseDrain)

	// Transitions after drain.
	if a.Fuel <= 0 {
		a.Status = model.StatusDead
		a.Vel = model.Vec3{}
		return
	}
	if a.Status == model.StatusFree && a.Fuel < cfg.FuelCritical {
		a.Status = model.StatusWeak
	}

	if a.Status == model.StatusReturning && model.Dist(a.Pos, cfg.BasePos) < cfg.ContactRadius {
		resetAtBase(st, a)
	}

	if a.Status == model.StatusRescue {
		completeRescue(st, a)
	}
}

// MoveToward steers the agent one step toward tgt, stopping short when
// already on top of it. The velocity is left pointing at the goal so
// boundary reflection has a direction to flip.
func MoveToward(a *model.Agent, tgt model.Vec3, speed float64) {
	dir := tgt.Sub(a.Pos)
	if dir.Mag() < 0.5 {
		return
	}
	a.Vel = dir.Norm()
	a.Pos = a.Pos.Add(a.Vel.Scale(speed))
}

// reflect negates the velocity component on any axis whose position has
// escaped the simulation bound.
func reflect(a *model.Agent, bound float64) {
	if a.Pos.X > bound || a.Pos.X < -bound {
		a.Vel.X = -a.Vel.X
	}
	if a.Pos.Y > bound || a.Pos.Y < -bound {
		a.Vel.Y = -a.Vel.Y
	}
	if a.Pos.Z > bound || a.Pos.Z < -bound {
		a.Vel.Z = -a.Vel.Z
	}
}

// resetAtBase is the full round-trip reset: returning agents that reach
// base come back as fresh free agents regardless of prior history.
func resetAtBase(st *model.State, a *model.Agent) {
	a.Fuel = st.Cfg.FuelTotal
	a.Status = model.StatusFree
	a.Vel = st.RandomVel()
	a.Role = model.RoleNone
	a.ClearBond()
	a.Target = model.NoTarget
	a.RescueTarget = model.NoAgent
}

// completeRescue performs the proximity fuel transfer when a rescuer
// reaches its victim. The rescuer heads home afterwards; a rescuer too
// poor to donate keeps loitering until it is reassigned or drains out.
func completeRescue(st *model.State, a *model.Agent) {
	v := st.Agent(a.RescueTarget)
	if v == nil || model.Dist(a.Pos, v.Pos) >= st.Cfg.ContactRadius {
		return
	}
	if a.Fuel < st.Cfg.MinRescueFuel {
		return
	}

	amount := min(st.Cfg.MinRescueFuel, a.Fuel/2, st.Cfg.FuelTotal-v.Fuel)
	if amount <= 0 {
		return
	}

	st.DrainFuel(a, amount)
	st.AddFuel(v, amount)
	if v.Fuel > st.Cfg.FuelCritical && v.Status == model.StatusDead {
		v.Status = model.StatusFree
		v.Vel = st.RandomVel()
		slog.Debug("agent revived", "victim", a.RescueTarget, "fuel", v.Fuel)
	}

	a.Status = model.StatusReturning
	a.RescueTarget = model.NoAgent
}
