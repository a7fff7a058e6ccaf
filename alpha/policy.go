package alpha

import (
	"fmt"

	"github.com/swarmworks/alphaswarm/model"
)

// Policy is the regulation posture: thresholds, probabilities and batch
// sizes the controller compiles into its rule set. Cadence intervals
// (strategy rotation, triplet formation) come from the simulation config.
type Policy struct {
	InstabilityThreshold float64 // weak+dead fraction that counts as unstable
	BondGrowth           float64 // radius increase per unstable pass
	BondDecay            float64 // radius decrease per stable pass

	RestructureChance float64 // probability of a forced disband when unstable
	RestructureSample int     // builders disbanded per restructure

	RescueChance float64 // probability of dispatching a rescue wave

	ReactivateFloor int // free-agent count considered critically low
	ReactivateBatch int // stationed agents reactivated at once

	BootstrapInterval int // tick modulus for the no-builders check

	PullInterval int     // tick modulus for steering free agents to work
	PullBlend    float64 // weight of the target direction in the blend

	EarlyBand float64 // completion below this → bottom-up strategy
	MidBand   float64 // completion below this → center-out strategy
}

// DefaultPolicy returns the reference regulation posture.
func DefaultPolicy() Policy {
	return Policy{
		InstabilityThreshold: 0.25,
		BondGrowth:           2,
		BondDecay:            0.5,
		RestructureChance:    0.2,
		RestructureSample:    2,
		RescueChance:         0.5,
		ReactivateFloor:      5,
		ReactivateBatch:      3,
		BootstrapInterval:    100,
		PullInterval:         40,
		PullBlend:            0.4,
		EarlyBand:            0.3,
		MidBand:              0.6,
	}
}

// Validate clamps all fields to their valid ranges.
func (p *Policy) Validate() {
	p.InstabilityThreshold = clamp(p.InstabilityThreshold, 0, 1)
	p.RestructureChance = clamp(p.RestructureChance, 0, 1)
	p.RescueChance = clamp(p.RescueChance, 0, 1)
	p.PullBlend = clamp(p.PullBlend, 0, 1)
	p.EarlyBand = clamp(p.EarlyBand, 0, 1)
	p.MidBand = clamp(p.MidBand, p.EarlyBand, 1)
	if p.BondGrowth < 0 {
		p.BondGrowth = 0
	}
	if p.BondDecay < 0 {
		p.BondDecay = 0
	}
	p.RestructureSample = clampInt(p.RestructureSample, 1, 10)
	p.RescueChance = clamp(p.RescueChance, 0, 1)
	p.ReactivateFloor = clampInt(p.ReactivateFloor, 0, 100)
	p.ReactivateBatch = clampInt(p.ReactivateBatch, 1, 10)
	if p.BootstrapInterval < 1 {
		p.BootstrapInterval = 1
	}
	if p.PullInterval < 1 {
		p.PullInterval = 1
	}
}

// CompilePolicy generates the regulation rule set from a policy and the
// simulation cadences. Conditions are built via fmt.Sprintf so the
// interpolated values are fixed at compile time.
func CompilePolicy(p Policy, cfg model.Config) []*Rule {
	p.Validate()
	var rules []*Rule

	// Bond radius breathes with swarm health: expand while unstable so
	// triads can still form across a scattered population, contract back
	// when stable. Same category, exclusive: one fires per pass.

	rules = append(rules, &Rule{
		Name:         "expand-bond-radius",
		Priority:     900,
		Category:     "radius",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Instability() > %g`, p.InstabilityThreshold),
		Action:       actionAdjustBondRadius(p.BondGrowth),
	})

	rules = append(rules, &Rule{
		Name:         "contract-bond-radius",
		Priority:     890,
		Category:     "radius",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Instability() <= %g`, p.InstabilityThreshold),
		Action:       actionAdjustBondRadius(-p.BondDecay),
	})

	rules = append(rules, &Rule{
		Name:      "force-restructure",
		Priority:  850,
		Category:  "restructure",
		Exclusive: false,
		ConditionSrc: fmt.Sprintf(`Instability() > %g && Builders() > 0 && Chance(%g)`,
			p.InstabilityThreshold, p.RestructureChance),
		Action: actionForceRestructure(p.RestructureSample),
	})

	rules = append(rules, &Rule{
		Name:         "rescue-wave",
		Priority:     800,
		Category:     "rescue",
		Exclusive:    false,
		ConditionSrc: fmt.Sprintf(`Dead() > 0 && Chance(%g)`, p.RescueChance),
		Action:       ActionRescueWave,
	})

	rules = append(rules, &Rule{
		Name:         "rotate-strategy",
		Priority:     700,
		Category:     "strategy",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`TicksSinceStrategyChange() >= %d`, cfg.StrategyInterval),
		Action:       actionRotateStrategy(p.EarlyBand, p.MidBand),
	})

	rules = append(rules, &Rule{
		Name:      "reactivate-stationed",
		Priority:  600,
		Category:  "population",
		Exclusive: false,
		ConditionSrc: fmt.Sprintf(`Free() < %d && Stationed() > 0 && Completion() < 1.0`,
			p.ReactivateFloor),
		Action: actionReactivateStationed(p.ReactivateBatch),
	})

	// Formation rules share a category: when the bootstrap fires (no
	// builders at all) the periodic check stands down for the pass.

	rules = append(rules, &Rule{
		Name:      "bootstrap-formation",
		Priority:  500,
		Category:  "formation",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`Builders() == 0 && Completion() < 1.0 && Free() >= 3 && Every(%d)`,
			p.BootstrapInterval),
		Action: ActionFormTriplet,
	})

	rules = append(rules, &Rule{
		Name:      "periodic-formation",
		Priority:  450,
		Category:  "formation",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`TicksSinceFormation() >= %d && Free() >= 3`,
			cfg.TripletInterval),
		Action: ActionFormTriplet,
	})

	rules = append(rules, &Rule{
		Name:      "pull-free",
		Priority:  400,
		Category:  "guidance",
		Exclusive: false,
		ConditionSrc: fmt.Sprintf(`Every(%d) && Free() > 0 && Completion() < 1.0`,
			p.PullInterval),
		Action: actionPullFree(p.PullBlend),
	})

	return rules
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
