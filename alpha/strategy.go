package alpha

import (
	"github.com/swarmworks/alphaswarm/model"
)

// Strategy names a build-priority ordering over target points.
type Strategy string

const (
	StrategyBottomUp  Strategy = "bottom_up"
	StrategyTopDown   Strategy = "top_down"
	StrategyLeftRight Strategy = "left_right"
	StrategyCenterOut Strategy = "center_out"
	StrategyRandom    Strategy = "random"
)

// priority scores a target position under the strategy. Unknown
// strategies fall back to bottom-up rather than failing.
func (s Strategy) priority(st *model.State, pos model.Vec3) float64 {
	switch s {
	case StrategyTopDown:
		return pos.Y
	case StrategyLeftRight:
		return pos.X
	case StrategyCenterOut:
		return -pos.Mag()
	case StrategyRandom:
		return st.Rand.Float64()
	default:
		return -pos.Y
	}
}

// ForCompletion picks the strategy for a completion fraction: ascend
// from the bottom early, build out from the center mid-run, randomize
// the stragglers late.
func ForCompletion(completion, earlyBand, midBand float64) Strategy {
	switch {
	case completion < earlyBand:
		return StrategyBottomUp
	case completion < midBand:
		return StrategyCenterOut
	default:
		return StrategyRandom
	}
}

// Recompute re-scores every target under the strategy and records it as
// active. The allocator's next assignment pass reflects the new ranking.
func Recompute(st *model.State, s Strategy) {
	for i := range st.Targets {
		st.Targets[i].Priority = s.priority(st, st.Targets[i].Pos)
	}
	st.Strategy = string(s)
}
