package sim

import (
	"math/rand"
	"testing"

	"github.com/swarmworks/alphaswarm/alpha"
	"github.com/swarmworks/alphaswarm/model"
	"github.com/swarmworks/alphaswarm/shape"
)

func newTestRunner(t *testing.T, agents int, seed int64) *Runner {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.NumAgents = agents

	rng := rand.New(rand.NewSource(seed))
	st := model.NewState(cfg, shape.LetterPoints('A'), rng)

	ctl, err := alpha.NewController(alpha.DefaultPolicy(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return NewRunner(st, ctl)
}

func TestNewRunnerBootstraps(t *testing.T) {
	r := newTestRunner(t, 40, 1)
	st := r.State

	if st.Strategy != "bottom_up" {
		t.Errorf("Strategy = %q, want bottom_up", st.Strategy)
	}
	var scored bool
	for i := range st.Targets {
		if st.Targets[i].Priority != 0 {
			scored = true
		}
	}
	if !scored {
		t.Error("target priorities never seeded")
	}
}

func TestStepAdvancesTick(t *testing.T) {
	r := newTestRunner(t, 10, 2)
	for i := 1; i <= 5; i++ {
		r.Step()
		if r.State.Tick != i {
			t.Fatalf("Tick = %d after %d steps", r.State.Tick, i)
		}
	}
}

// checkInvariants asserts the cross-tick structural properties: fuel
// stays in tank range, immobile statuses hold still, locks are exclusive
// with valid back-references, and bonds only name live beacons.
func checkInvariants(t *testing.T, st *model.State) {
	t.Helper()

	for i := range st.Agents {
		a := &st.Agents[i]
		if a.Fuel < 0 || a.Fuel > st.Cfg.FuelTotal {
			t.Fatalf("tick %d: agent %d fuel %v out of range", st.Tick, i, a.Fuel)
		}
		if !a.Status.Mobile() && a.Vel.Mag() != 0 {
			t.Fatalf("tick %d: %v agent %d has velocity %v", st.Tick, a.Status, i, a.Vel)
		}
		if a.Status == model.StatusBeacon && a.Role == model.RoleNone {
			t.Fatalf("tick %d: beacon %d has no role", st.Tick, i)
		}
		if a.Status == model.StatusBuilder {
			if !a.Bonded() {
				t.Fatalf("tick %d: builder %d without a beacon pair", st.Tick, i)
			}
			for _, bh := range a.Bond {
				b := st.Agent(bh)
				if b == nil || b.Status != model.StatusBeacon {
					t.Fatalf("tick %d: builder %d bonded to non-beacon %d", st.Tick, i, bh)
				}
			}
		}
	}

	owners := make(map[int]model.Handle)
	for i := range st.Targets {
		tgt := &st.Targets[i]
		if tgt.Locked {
			if tgt.Owner == model.NoAgent {
				t.Fatalf("tick %d: target %d locked without owner", st.Tick, i)
			}
			owner := st.Agent(tgt.Owner)
			if owner == nil || owner.Target != i {
				t.Fatalf("tick %d: target %d owner %d does not point back", st.Tick, i, tgt.Owner)
			}
			if prev, dup := owners[i]; dup {
				t.Fatalf("tick %d: target %d owned twice (%d, %d)", st.Tick, i, prev, tgt.Owner)
			}
			owners[i] = tgt.Owner
		}
		if tgt.Progress < 0 || tgt.Progress > 1 {
			t.Fatalf("tick %d: target %d progress %v out of range", st.Tick, i, tgt.Progress)
		}
	}

	claims := make(map[int]model.Handle)
	for i := range st.Agents {
		a := &st.Agents[i]
		if a.Status != model.StatusBuilder || a.Target == model.NoTarget {
			continue
		}
		if prev, dup := claims[a.Target]; dup {
			t.Fatalf("tick %d: builders %d and %d share target %d", st.Tick, prev, i, a.Target)
		}
		claims[a.Target] = model.Handle(i)
	}
}

func TestRunInvariantsHold(t *testing.T) {
	for _, seed := range []int64{1, 7, 99} {
		r := newTestRunner(t, 40, seed)
		checkInvariants(t, r.State)
		for i := 0; i < 2000; i++ {
			r.Step()
			checkInvariants(t, r.State)
			if r.Done() {
				break
			}
		}
	}
}

func TestBuiltTargetsMonotonic(t *testing.T) {
	r := newTestRunner(t, 40, 5)
	prev := 0
	for i := 0; i < 1500; i++ {
		r.Step()
		built := r.State.BuiltTargets()
		if built < prev {
			t.Fatalf("tick %d: built count regressed %d -> %d", r.State.Tick, prev, built)
		}
		prev = built
	}
}

func TestDeterministicForFixedSeed(t *testing.T) {
	a := newTestRunner(t, 30, 11)
	b := newTestRunner(t, 30, 11)
	for i := 0; i < 500; i++ {
		a.Step()
		b.Step()
	}

	if a.State.Tick != b.State.Tick {
		t.Fatalf("ticks diverged: %d vs %d", a.State.Tick, b.State.Tick)
	}
	for i := range a.State.Agents {
		x, y := &a.State.Agents[i], &b.State.Agents[i]
		if x.Pos != y.Pos || x.Fuel != y.Fuel || x.Status != y.Status {
			t.Fatalf("agent %d diverged: %+v vs %+v", i, x, y)
		}
	}
	for i := range a.State.Targets {
		if a.State.Targets[i] != b.State.Targets[i] {
			t.Fatalf("target %d diverged", i)
		}
	}
}

func TestDoneOnlyWhenAllBuilt(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.NumAgents = 5
	st := model.NewState(cfg, []model.Vec3{{Y: 5}, {Y: 10}}, rand.New(rand.NewSource(1)))
	ctl, err := alpha.NewController(alpha.DefaultPolicy(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	r := NewRunner(st, ctl)

	if r.Done() {
		t.Fatal("Done before any target built")
	}
	st.Targets[0].Built = true
	if r.Done() {
		t.Fatal("Done with one of two targets built")
	}
	st.Targets[1].Built = true
	if !r.Done() {
		t.Fatal("not Done with every target built")
	}
}
