package swarm

import (
	"log/slog"
	"sort"

	"github.com/swarmworks/alphaswarm/model"
)

// Triplet identifies a freshly bonded builder/beacon trio.
type Triplet struct {
	Builder model.Handle
	Beacons [2]model.Handle
}

// FormTriplet attempts to bond a builder with two nearby beacons inside
// bondRadius. It prefers candidates near an unbuilt target so new triads
// spawn where work remains. Returns false when fewer than three eligible
// free agents are close enough; formation simply retries a later tick.
//
// Role policy: the commander label always sits on the richer beacon, at
// formation and after every transfer (see RefuelBuilder).
func FormTriplet(st *model.State, bondRadius float64) (Triplet, bool) {
	eligible := eligibleFree(st)
	if len(eligible) < 3 {
		return Triplet{}, false
	}

	// Bias toward the construction site: if enough eligible agents sit
	// near a random unbuilt target, recruit from that neighborhood only.
	if site, ok := randomUnbuilt(st); ok {
		var near []model.Handle
		for _, h := range eligible {
			if model.Dist(st.Agent(h).Pos, site) < bondRadius*2 {
				near = append(near, h)
			}
		}
		if len(near) >= 3 {
			eligible = near
		}
	}

	seed := eligible[st.Rand.Intn(len(eligible))]
	sa := st.Agent(seed)

	var neighbors []model.Handle
	for _, h := range eligible {
		if h != seed && model.Dist(st.Agent(h).Pos, sa.Pos) <= bondRadius {
			neighbors = append(neighbors, h)
		}
	}
	if len(neighbors) < 2 {
		return Triplet{}, false
	}
	sort.Slice(neighbors, func(i, j int) bool {
		return model.Dist(st.Agent(neighbors[i]).Pos, sa.Pos) <
			model.Dist(st.Agent(neighbors[j]).Pos, sa.Pos)
	})

	b1, b2 := neighbors[0], neighbors[1]
	a1, a2 := st.Agent(b1), st.Agent(b2)

	sa.Status = model.StatusBuilder
	sa.Bond = [2]model.Handle{b1, b2}

	a1.Status = model.StatusBeacon
	a2.Status = model.StatusBeacon
	a1.Vel = model.Vec3{}
	a2.Vel = model.Vec3{}
	if a1.Fuel >= a2.Fuel {
		a1.Role = model.RoleCommander
		a2.Role = model.RoleReserver
	} else {
		a1.Role = model.RoleReserver
		a2.Role = model.RoleCommander
	}

	for _, h := range []model.Handle{seed, b1, b2} {
		st.DrainFuel(st.Agent(h), st.Cfg.FormationCost)
	}

	slog.Debug("triplet formed", "builder", seed, "beacons", []model.Handle{b1, b2}, "radius", bondRadius)
	return Triplet{Builder: seed, Beacons: [2]model.Handle{b1, b2}}, true
}

// RefuelBuilder transfers fuel from the richer bonded beacon to the
// builder. Fails when the builder has no valid pair or the donor can't
// spare anything; the caller owns the fallback (release bond, return to
// base).
func RefuelBuilder(st *model.State, builder model.Handle) bool {
	b := st.Agent(builder)
	if b == nil || !b.Bonded() {
		return false
	}
	p1, p2 := st.Agent(b.Bond[0]), st.Agent(b.Bond[1])

	donor := p1
	if p2.Fuel > p1.Fuel {
		donor = p2
	}
	if donor.Fuel <= st.Cfg.FuelTotal*st.Cfg.DonorFloor {
		return false
	}

	amount := min(st.Cfg.ShareCap, donor.Fuel*0.5, donor.Fuel-st.Cfg.FuelCritical)
	if amount <= 0 {
		return false
	}

	st.DrainFuel(donor, amount)
	st.AddFuel(b, amount)
	swapRolesIfNeeded(p1, p2)

	slog.Debug("builder refueled", "builder", builder, "amount", amount, "donorFuel", donor.Fuel)
	return true
}

// ReleaseBond dissolves a builder's triad: both beacons return to the
// free pool with fresh roaming velocities and the bond reference clears.
func ReleaseBond(st *model.State, builder model.Handle) {
	b := st.Agent(builder)
	if b == nil || !b.Bonded() {
		return
	}
	for _, h := range b.Bond {
		beacon := st.Agent(h)
		if beacon == nil || beacon.Status != model.StatusBeacon {
			continue
		}
		beacon.Status = model.StatusFree
		beacon.Role = model.RoleNone
		beacon.Vel = st.RandomVel()
	}
	b.ClearBond()
}

// swapRolesIfNeeded keeps the commander label on the richer beacon.
func swapRolesIfNeeded(p1, p2 *model.Agent) {
	richer, poorer := p1, p2
	if p2.Fuel > p1.Fuel {
		richer, poorer = p2, p1
	}
	if richer.Role != model.RoleCommander {
		richer.Role, poorer.Role = model.RoleCommander, model.RoleReserver
	}
}

// eligibleFree lists free agents with enough fuel to join a triad.
func eligibleFree(st *model.State) []model.Handle {
	var out []model.Handle
	for i := range st.Agents {
		a := &st.Agents[i]
		if a.Status == model.StatusFree && a.Fuel >= st.Cfg.FuelLow {
			out = append(out, model.Handle(i))
		}
	}
	return out
}

// randomUnbuilt picks a uniformly random unbuilt target position.
func randomUnbuilt(st *model.State) (model.Vec3, bool) {
	var idx []int
	for i := range st.Targets {
		if !st.Targets[i].Built {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return model.Vec3{}, false
	}
	return st.Targets[idx[st.Rand.Intn(len(idx))]].Pos, true
}
