package swarm

import (
	"testing"

	"github.com/swarmworks/alphaswarm/model"
)

func TestAssignRescuersPicksNearest(t *testing.T) {
	victim := freeAgent(model.Vec3{}, 0)
	victim.Status = model.StatusDead
	victim.Vel = model.Vec3{}

	near := freeAgent(model.Vec3{X: 5}, 80)
	far := freeAgent(model.Vec3{X: 20}, 80)

	st := newTestState([]model.Agent{victim, near, far}, nil)

	if n := AssignRescuers(st); n != 1 {
		t.Fatalf("dispatched %d rescuers, want 1", n)
	}
	if st.Agents[1].Status != model.StatusRescue {
		t.Errorf("nearest agent status = %v, want rescue", st.Agents[1].Status)
	}
	if st.Agents[1].RescueTarget != 0 {
		t.Errorf("rescue target = %v, want victim 0", st.Agents[1].RescueTarget)
	}
	if st.Agents[2].Status != model.StatusFree {
		t.Errorf("far agent status = %v, want still free", st.Agents[2].Status)
	}
}

func TestAssignRescuersOneVictimPerRescuer(t *testing.T) {
	dead1 := freeAgent(model.Vec3{}, 0)
	dead1.Status = model.StatusDead
	dead2 := freeAgent(model.Vec3{X: 2}, 0)
	dead2.Status = model.StatusDead

	rescuer := freeAgent(model.Vec3{X: 1}, 80)

	st := newTestState([]model.Agent{dead1, dead2, rescuer}, nil)

	if n := AssignRescuers(st); n != 1 {
		t.Errorf("dispatched %d rescuers, want 1 (pool exhausted)", n)
	}
	if st.Agents[2].Status != model.StatusRescue {
		t.Error("the only eligible agent must be dispatched")
	}
}

func TestAssignRescuersRequiresFuel(t *testing.T) {
	victim := freeAgent(model.Vec3{}, 0)
	victim.Status = model.StatusDead

	// At FuelLow exactly, not strictly above, so ineligible.
	poor := freeAgent(model.Vec3{X: 2}, 30)

	st := newTestState([]model.Agent{victim, poor}, nil)

	if n := AssignRescuers(st); n != 0 {
		t.Errorf("dispatched %d rescuers, want 0", n)
	}
}

func TestAssignRescuersBoundedBatch(t *testing.T) {
	var agents []model.Agent
	for i := 0; i < rescueBatch+2; i++ {
		dead := freeAgent(model.Vec3{X: float64(i)}, 0)
		dead.Status = model.StatusDead
		agents = append(agents, dead)
	}
	for i := 0; i < rescueBatch+2; i++ {
		agents = append(agents, freeAgent(model.Vec3{X: float64(30 + i)}, 80))
	}
	st := newTestState(agents, nil)

	if n := AssignRescuers(st); n != rescueBatch {
		t.Errorf("dispatched %d rescuers, want batch limit %d", n, rescueBatch)
	}
}

func TestAidWeakDrawsFromReserver(t *testing.T) {
	weak := freeAgent(model.Vec3{}, 10)
	weak.Status = model.StatusWeak

	reserver := freeAgent(model.Vec3{X: 1}, 80)
	reserver.Status = model.StatusBeacon
	reserver.Role = model.RoleReserver
	reserver.Vel = model.Vec3{}

	st := newTestState([]model.Agent{weak, reserver}, nil)

	AidWeak(st)

	w := &st.Agents[0]
	if w.Status != model.StatusFree {
		t.Errorf("weak agent status = %v, want free after aid", w.Status)
	}
	if w.Fuel <= 10 {
		t.Error("weak agent received no fuel")
	}
	if w.Fuel > st.Cfg.FuelTotal {
		t.Errorf("fuel = %v, exceeds full tank", w.Fuel)
	}
	if st.Agents[1].Fuel >= 80 {
		t.Error("donor fuel not deducted")
	}
}

func TestAidWeakIgnoresDistantOrPoorDonors(t *testing.T) {
	tests := []struct {
		name string
		pos  model.Vec3
		fuel float64
		role model.Role
	}{
		{"donor out of range", model.Vec3{X: 10}, 80, model.RoleReserver},
		{"donor below surplus floor", model.Vec3{X: 1}, 30, model.RoleReserver},
		{"commander is not a donor", model.Vec3{X: 1}, 80, model.RoleCommander},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			weak := freeAgent(model.Vec3{}, 10)
			weak.Status = model.StatusWeak

			beacon := freeAgent(tc.pos, tc.fuel)
			beacon.Status = model.StatusBeacon
			beacon.Role = tc.role
			beacon.Vel = model.Vec3{}

			st := newTestState([]model.Agent{weak, beacon}, nil)
			AidWeak(st)

			if st.Agents[0].Status != model.StatusWeak {
				t.Errorf("weak agent status = %v, want unchanged", st.Agents[0].Status)
			}
			if st.Agents[0].Fuel != 10 {
				t.Errorf("weak agent fuel = %v, want unchanged", st.Agents[0].Fuel)
			}
		})
	}
}
