package alpha

import (
	"math/rand"

	"github.com/swarmworks/alphaswarm/model"
)

// newTestState builds a deterministic state with n free agents clustered
// near the origin and the given target positions.
func newTestState(n int, points []model.Vec3) *model.State {
	cfg := model.DefaultConfig()
	cfg.NumAgents = n
	st := &model.State{
		Cfg:        cfg,
		BondRadius: cfg.BondRadius,
		Rand:       rand.New(rand.NewSource(7)),
	}
	st.Agents = make([]model.Agent, n)
	for i := range st.Agents {
		st.Agents[i] = model.Agent{
			Pos:          model.Vec3{X: float64(i)},
			Vel:          model.Vec3{X: 1},
			Fuel:         cfg.FuelTotal,
			Status:       model.StatusFree,
			Bond:         [2]model.Handle{model.NoAgent, model.NoAgent},
			RescueTarget: model.NoAgent,
			Target:       model.NoTarget,
		}
	}
	st.Targets = make([]model.Target, len(points))
	for i, p := range points {
		st.Targets[i] = model.Target{Pos: p, Owner: model.NoAgent}
	}
	return st
}

func newTestEnv(st *model.State) RuleEnv {
	return RuleEnv{
		State:  st,
		TM:     st.Telemetry(),
		Memory: make(map[string]any),
	}
}
