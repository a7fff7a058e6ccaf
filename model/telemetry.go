package model

// Telemetry is the aggregate health record the Alpha controller regulates
// from, and the queryable snapshot exposed to presentation consumers.
type Telemetry struct {
	Tick         int     `json:"tick"`
	AvgFuel      float64 `json:"avgFuel"`
	Free         int     `json:"free"`
	Builders     int     `json:"builders"`
	Beacons      int     `json:"beacons"`
	Rescuers     int     `json:"rescuers"`
	Returning    int     `json:"returning"`
	Weak         int     `json:"weak"`
	Dead         int     `json:"dead"`
	Stationed    int     `json:"stationed"`
	Instability  float64 `json:"instability"`
	Completion   float64 `json:"completion"`
	BuiltTargets int     `json:"builtTargets"`
	TotalTargets int     `json:"totalTargets"`
	Strategy     string  `json:"strategy"`
	BondRadius   float64 `json:"bondRadius"`
}

// Telemetry aggregates the swarm in one pass. Instability is the weak+dead
// fraction of the population.
func (st *State) Telemetry() Telemetry {
	tm := Telemetry{
		Tick:         st.Tick,
		Strategy:     st.Strategy,
		BondRadius:   st.BondRadius,
		TotalTargets: len(st.Targets),
	}

	var fuel float64
	for i := range st.Agents {
		a := &st.Agents[i]
		fuel += a.Fuel
		switch a.Status {
		case StatusFree:
			tm.Free++
		case StatusBuilder:
			tm.Builders++
		case StatusBeacon:
			tm.Beacons++
		case StatusRescue:
			tm.Rescuers++
		case StatusReturning:
			tm.Returning++
		case StatusWeak:
			tm.Weak++
		case StatusDead:
			tm.Dead++
		case StatusStationed:
			tm.Stationed++
		}
	}

	if n := len(st.Agents); n > 0 {
		tm.AvgFuel = fuel / float64(n)
		tm.Instability = float64(tm.Weak+tm.Dead) / float64(n)
	}

	tm.BuiltTargets = st.BuiltTargets()
	if tm.TotalTargets > 0 {
		tm.Completion = float64(tm.BuiltTargets) / float64(tm.TotalTargets)
	} else {
		tm.Completion = 1
	}
	return tm
}
