package alpha

import (
	"log/slog"
	"sort"

	"github.com/swarmworks/alphaswarm/model"
	"github.com/swarmworks/alphaswarm/swarm"
)

// actionAdjustBondRadius nudges the bonding radius by delta, bounded by
// the configured range.
func actionAdjustBondRadius(delta float64) ActionFunc {
	return func(env RuleEnv) error {
		st := env.State
		r := st.BondRadius + delta
		if r > st.Cfg.BondRadiusMax {
			r = st.Cfg.BondRadiusMax
		}
		if r < st.Cfg.BondRadiusMin {
			r = st.Cfg.BondRadiusMin
		}
		st.BondRadius = r
		return nil
	}
}

// actionForceRestructure disbands a random sample of active builders:
// their beacons rejoin the free pool and the builders head home. The
// next formation pass rebuilds triads under the adjusted bond radius.
func actionForceRestructure(sample int) ActionFunc {
	return func(env RuleEnv) error {
		st := env.State

		var builders []model.Handle
		for i := range st.Agents {
			if st.Agents[i].Status == model.StatusBuilder {
				builders = append(builders, model.Handle(i))
			}
		}
		if len(builders) == 0 {
			return nil
		}

		st.Rand.Shuffle(len(builders), func(i, j int) {
			builders[i], builders[j] = builders[j], builders[i]
		})
		if len(builders) > sample {
			builders = builders[:sample]
		}

		for _, h := range builders {
			swarm.DissolveTriad(st, h)
		}
		slog.Info("forced restructure", "disbanded", len(builders), "bondRadius", st.BondRadius)
		return nil
	}
}

// ActionRescueWave dispatches the rescue coordinator.
func ActionRescueWave(env RuleEnv) error {
	if n := swarm.AssignRescuers(env.State); n > 0 {
		slog.Info("rescue wave", "dispatched", n, "dead", env.TM.Dead)
	}
	return nil
}

// actionRotateStrategy re-selects the build-priority strategy from the
// completion band and recomputes every target's priority under it.
func actionRotateStrategy(earlyBand, midBand float64) ActionFunc {
	return func(env RuleEnv) error {
		st := env.State
		next := ForCompletion(env.TM.Completion, earlyBand, midBand)
		Recompute(st, next)
		env.Memory["strategyTick"] = st.Tick
		slog.Info("strategy rotated", "strategy", next, "completion", env.TM.Completion)
		return nil
	}
}

// actionReactivateStationed returns a bounded batch of parked agents to
// the free pool while construction is short-handed.
func actionReactivateStationed(batch int) ActionFunc {
	return func(env RuleEnv) error {
		st := env.State
		n := 0
		for i := range st.Agents {
			if n >= batch {
				break
			}
			a := &st.Agents[i]
			if a.Status != model.StatusStationed {
				continue
			}
			a.Status = model.StatusFree
			a.Vel = st.RandomVel()
			n++
		}
		if n > 0 {
			slog.Info("reactivated stationed agents", "count", n, "free", env.TM.Free)
		}
		return nil
	}
}

// ActionFormTriplet attempts one triad formation under the current bond
// radius and stamps the formation tick on success.
func ActionFormTriplet(env RuleEnv) error {
	st := env.State
	if trip, ok := swarm.FormTriplet(st, st.BondRadius); ok {
		env.Memory["formationTick"] = st.Tick
		slog.Info("triplet formed", "builder", trip.Builder, "bondRadius", st.BondRadius)
	}
	return nil
}

// actionPullFree blends free agents' velocities toward the highest
// priority unbuilt targets so roamers drift to where work remains.
func actionPullFree(blend float64) ActionFunc {
	return func(env RuleEnv) error {
		st := env.State

		var unbuilt []int
		for i := range st.Targets {
			if !st.Targets[i].Built && !st.Targets[i].Locked {
				unbuilt = append(unbuilt, i)
			}
		}
		if len(unbuilt) == 0 {
			return nil
		}
		sort.Slice(unbuilt, func(i, j int) bool {
			return st.Targets[unbuilt[i]].Priority > st.Targets[unbuilt[j]].Priority
		})

		var free []model.Handle
		for i := range st.Agents {
			if st.Agents[i].Status == model.StatusFree {
				free = append(free, model.Handle(i))
			}
		}
		st.Rand.Shuffle(len(free), func(i, j int) {
			free[i], free[j] = free[j], free[i]
		})

		for _, h := range free {
			if len(unbuilt) == 0 {
				break
			}
			t := &st.Targets[unbuilt[0]]
			unbuilt = unbuilt[1:]

			a := st.Agent(h)
			dir := t.Pos.Sub(a.Pos).Norm()
			a.Vel = a.Vel.Scale(1 - blend).Add(dir.Scale(blend))
		}
		return nil
	}
}
