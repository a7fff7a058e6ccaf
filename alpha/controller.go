package alpha

import (
	"github.com/swarmworks/alphaswarm/model"
)

// Controller is the Alpha: it reads aggregate telemetry each tick and
// runs the compiled regulation rule set against it. It is advisory, not
// a physical agent; its position only trails the swarm centroid for
// presentation.
type Controller struct {
	engine *Engine
	Pos    model.Vec3
}

// NewController compiles the policy against the simulation config.
func NewController(p Policy, cfg model.Config) (*Controller, error) {
	engine, err := NewEngine(CompilePolicy(p, cfg))
	if err != nil {
		return nil, err
	}
	return &Controller{engine: engine}, nil
}

// Regulate runs one regulation pass. It observes the state as left by
// the previous tick: telemetry is aggregated once, before any rule
// mutates anything.
func (c *Controller) Regulate(st *model.State) {
	tm := st.Telemetry()

	// Advisory position trails the swarm centroid (EMA).
	c.Pos = c.Pos.Scale(0.95).Add(st.Centroid().Scale(0.05))

	c.engine.Evaluate(RuleEnv{
		State:  st,
		TM:     tm,
		Memory: c.engine.Memory,
	})
}
