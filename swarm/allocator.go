package swarm

import (
	"log/slog"
	"sort"

	"github.com/swarmworks/alphaswarm/model"
)

// SweepLocks releases every lock whose owner is no longer an active
// builder (dead, disbanded, returned). Swept targets become contestable
// again; sweeping is idempotent.
func SweepLocks(st *model.State) {
	for i := range st.Targets {
		t := &st.Targets[i]
		if !t.Locked {
			continue
		}
		owner := st.Agent(t.Owner)
		if owner == nil || owner.Status != model.StatusBuilder {
			t.Unlock()
		}
	}
}

// BuildStep runs the allocation and construction pass for every bonded
// builder: keep or reacquire a target, steer toward it, accumulate
// progress in arrival range, and handle completion.
func BuildStep(st *model.State) {
	SweepLocks(st)

	for i := range st.Agents {
		h := model.Handle(i)
		b := &st.Agents[i]
		if b.Status != model.StatusBuilder {
			continue
		}

		// A builder whose pair has died or dissolved can't be sustained;
		// release whatever is left of the bond and head home.
		if !liveBond(st, b) {
			DissolveTriad(st, h)
			continue
		}

		// Low tank: top up from the beacon pair before anything else.
		// A failed refuel dissolves the triad and sends the builder home.
		if b.Fuel < st.Cfg.FuelLow {
			if !RefuelBuilder(st, h) {
				DissolveTriad(st, h)
				continue
			}
		}

		if !holdsLiveTarget(st, h) {
			if !acquireTarget(st, h) {
				// Nothing left to build.
				DissolveTriad(st, h)
				continue
			}
		}

		t := &st.Targets[b.Target]
		MoveToward(b, t.Pos, st.Cfg.Speed)

		if model.Dist(b.Pos, t.Pos) < st.Cfg.ArrivalRadius {
			t.Progress += st.Cfg.BuildIncrement
			if t.Progress >= 1 {
				t.Progress = 1
				completeTarget(st, h)
			}
		}
	}
}

// DissolveTriad tears a builder's triad down completely: the claim is
// unlocked, the beacons rejoin the free pool and the builder heads home.
func DissolveTriad(st *model.State, h model.Handle) {
	b := st.Agent(h)
	if b.Target != model.NoTarget {
		if t := &st.Targets[b.Target]; t.Locked && t.Owner == h {
			t.Unlock()
		}
		b.Target = model.NoTarget
	}
	ReleaseBond(st, h)
	b.Status = model.StatusReturning
}

// liveBond reports whether the builder still holds two working beacons.
func liveBond(st *model.State, b *model.Agent) bool {
	if !b.Bonded() {
		return false
	}
	p1, p2 := st.Agent(b.Bond[0]), st.Agent(b.Bond[1])
	return p1.Status == model.StatusBeacon && p2.Status == model.StatusBeacon
}

// holdsLiveTarget reports whether the builder's current claim is still
// worth keeping: unbuilt, locked to it, and younger than the revision
// interval.
func holdsLiveTarget(st *model.State, h model.Handle) bool {
	b := st.Agent(h)
	if b.Target == model.NoTarget {
		return false
	}
	t := &st.Targets[b.Target]
	return !t.Built && t.Locked && t.Owner == h &&
		st.Tick-b.LastGoalRevision < st.Cfg.GoalRevision
}

// acquireTarget scores every unbuilt, unlocked target and locks the best
// uncontested one. A candidate is contested when another builder is
// already en route to it from strictly closer; if every candidate is
// contested the top-scored one is taken anyway. Returns false only when
// no candidates exist.
func acquireTarget(st *model.State, h model.Handle) bool {
	b := st.Agent(h)

	// Drop the previous claim first so an expired-but-held lock can't
	// outlive the reference pointing at it.
	if b.Target != model.NoTarget {
		if t := &st.Targets[b.Target]; t.Locked && t.Owner == h {
			t.Unlock()
		}
		b.Target = model.NoTarget
	}

	var candidates []int
	for i := range st.Targets {
		if !st.Targets[i].Built && !st.Targets[i].Locked {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	score := func(idx int) float64 {
		t := &st.Targets[idx]
		return t.Priority*st.Cfg.PriorityWeight - model.Dist(t.Pos, b.Pos)*st.Cfg.DistanceWeight
	}
	sort.Slice(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})

	chosen := candidates[0]
	for _, idx := range candidates {
		if !contested(st, h, idx) {
			chosen = idx
			break
		}
	}

	t := &st.Targets[chosen]
	t.Locked = true
	t.Owner = h
	b.Target = chosen
	b.LastGoalRevision = st.Tick
	return true
}

// contested reports whether another builder already heads for target idx
// from strictly closer than builder h.
func contested(st *model.State, h model.Handle, idx int) bool {
	b := st.Agent(h)
	myDist := model.Dist(b.Pos, st.Targets[idx].Pos)
	for i := range st.Agents {
		other := &st.Agents[i]
		if model.Handle(i) == h || other.Status != model.StatusBuilder || other.Target != idx {
			continue
		}
		if model.Dist(other.Pos, st.Targets[idx].Pos) < myDist {
			return true
		}
	}
	return false
}

// completeTarget finishes construction: the point is built and unlocked,
// the builder pays the construction cost, then either parks on the spot
// (probabilistic) or stays eligible for new work. Either way a low tank
// triggers the standard refuel-or-return path.
func completeTarget(st *model.State, h model.Handle) {
	b := st.Agent(h)
	t := &st.Targets[b.Target]

	t.Built = true
	t.Unlock()
	st.DrainFuel(b, st.Cfg.BuildCost)
	b.Target = model.NoTarget

	slog.Debug("target built", "builder", h, "built", st.BuiltTargets(), "total", len(st.Targets))

	if st.Rand.Float64() < st.Cfg.StationedChance {
		b.Status = model.StatusStationed
		b.Pos = t.Pos
		b.Vel = model.Vec3{}
		ReleaseBond(st, h)
	}

	if b.Fuel < st.Cfg.FuelLow && b.Status != model.StatusStationed {
		if !RefuelBuilder(st, h) {
			ReleaseBond(st, h)
			b.Status = model.StatusReturning
		}
	}
}
