package swarm

import (
	"math/rand"

	"github.com/swarmworks/alphaswarm/model"
)

// newTestState builds a state around explicit agents and target
// positions, with a fixed seed so randomized paths are reproducible.
func newTestState(agents []model.Agent, points []model.Vec3) *model.State {
	cfg := model.DefaultConfig()
	cfg.NumAgents = len(agents)
	st := &model.State{
		Cfg:        cfg,
		Agents:     agents,
		BondRadius: cfg.BondRadius,
		Rand:       rand.New(rand.NewSource(42)),
	}
	st.Targets = make([]model.Target, len(points))
	for i, p := range points {
		st.Targets[i] = model.Target{Pos: p, Owner: model.NoAgent}
	}
	return st
}

// freeAgent returns a roaming agent with clean references.
func freeAgent(pos model.Vec3, fuel float64) model.Agent {
	return model.Agent{
		Pos:          pos,
		Vel:          model.Vec3{X: 1},
		Fuel:         fuel,
		Status:       model.StatusFree,
		Bond:         [2]model.Handle{model.NoAgent, model.NoAgent},
		RescueTarget: model.NoAgent,
		Target:       model.NoTarget,
	}
}

// bondedTriplet wires agents 0 (builder), 1 and 2 (beacons) by hand.
func bondedTriplet(builderFuel, beaconFuel1, beaconFuel2 float64) []model.Agent {
	builder := freeAgent(model.Vec3{}, builderFuel)
	builder.Status = model.StatusBuilder
	builder.Bond = [2]model.Handle{1, 2}

	b1 := freeAgent(model.Vec3{X: 2}, beaconFuel1)
	b1.Status = model.StatusBeacon
	b1.Role = model.RoleCommander
	b1.Vel = model.Vec3{}

	b2 := freeAgent(model.Vec3{X: -2}, beaconFuel2)
	b2.Status = model.StatusBeacon
	b2.Role = model.RoleReserver
	b2.Vel = model.Vec3{}

	return []model.Agent{builder, b1, b2}
}
