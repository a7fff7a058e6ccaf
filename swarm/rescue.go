package swarm

import (
	"log/slog"
	"math"

	"github.com/swarmworks/alphaswarm/model"
)

// rescueBatch bounds how many victims get a rescuer per assignment pass.
const rescueBatch = 3

// AssignRescuers pairs dead agents with their nearest eligible free
// agents, one victim per rescuer; a rescuer leaves the pool as soon as
// it is assigned. Returns how many rescues were dispatched.
func AssignRescuers(st *model.State) int {
	var victims []model.Handle
	for i := range st.Agents {
		if st.Agents[i].Status == model.StatusDead {
			victims = append(victims, model.Handle(i))
		}
	}
	if len(victims) > rescueBatch {
		victims = victims[:rescueBatch]
	}

	pool := make(map[model.Handle]bool)
	for i := range st.Agents {
		a := &st.Agents[i]
		if a.Status == model.StatusFree && a.Fuel > st.Cfg.FuelLow {
			pool[model.Handle(i)] = true
		}
	}

	assigned := 0
	for _, v := range victims {
		if len(pool) == 0 {
			break
		}
		rescuer := nearestIn(st, pool, st.Agent(v).Pos)
		delete(pool, rescuer)

		r := st.Agent(rescuer)
		r.Status = model.StatusRescue
		r.RescueTarget = v
		assigned++
		slog.Debug("rescue dispatched", "rescuer", rescuer, "victim", v)
	}
	return assigned
}

// AidWeak runs every tick: weak agents near a sufficiently fueled
// reserver beacon draw a transfer and revert to free.
func AidWeak(st *model.State) {
	for i := range st.Agents {
		w := &st.Agents[i]
		if w.Status != model.StatusWeak {
			continue
		}

		donor := nearestReserver(st, w.Pos)
		if donor == nil || model.Dist(w.Pos, donor.Pos) >= st.Cfg.ContactRadius {
			continue
		}

		amount := min(st.Cfg.ShareCap, donor.Fuel-st.Cfg.FuelCritical)
		if amount <= 0 {
			continue
		}
		st.DrainFuel(donor, amount)
		st.AddFuel(w, amount)
		w.Status = model.StatusFree
		slog.Debug("weak agent aided", "agent", i, "amount", amount)
	}
}

// nearestReserver finds the closest reserver beacon holding a fuel
// surplus (above a third of the full tank), or nil.
func nearestReserver(st *model.State, pos model.Vec3) *model.Agent {
	var best *model.Agent
	bestDist := math.MaxFloat64
	for i := range st.Agents {
		a := &st.Agents[i]
		if a.Status != model.StatusBeacon || a.Role != model.RoleReserver {
			continue
		}
		if a.Fuel <= st.Cfg.FuelTotal*st.Cfg.DonorFloor {
			continue
		}
		if d := model.Dist(a.Pos, pos); d < bestDist {
			bestDist = d
			best = a
		}
	}
	return best
}

// nearestIn returns the handle in pool closest to pos. Ties break on the
// lower handle so map iteration order can't leak into the simulation.
func nearestIn(st *model.State, pool map[model.Handle]bool, pos model.Vec3) model.Handle {
	best := model.NoAgent
	bestDist := math.MaxFloat64
	for h := range pool {
		d := model.Dist(st.Agent(h).Pos, pos)
		if d < bestDist || (d == bestDist && (best == model.NoAgent || h < best)) {
			bestDist = d
			best = h
		}
	}
	return best
}
