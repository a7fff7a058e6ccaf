package model

// Config carries every recognized tunable of the coordination core.
// Defaults reproduce the reference parameter set; Validate clamps the
// values that have hard ranges.
type Config struct {
	NumAgents int

	// Fuel economy.
	FuelTotal    float64 // full tank
	FuelLow      float64 // triggers refuel requests
	FuelCritical float64 // free agents below this turn weak
	ShareCap     float64 // max single transfer
	BaseDrain    float64 // per-tick drain for moving agents
	BeaconDrain  float64 // fraction of BaseDrain for beacons
	StationDrain float64 // fraction of BaseDrain for stationed agents

	// Movement.
	Speed         float64
	WorldBound    float64 // elastic reflection past ±WorldBound per axis
	ArrivalRadius float64 // close enough to build
	ContactRadius float64 // close enough for base return / rescue / aid
	BasePos       Vec3

	// Bonding.
	BondRadius    float64 // initial; adaptive within [BondRadiusMin, BondRadiusMax]
	BondRadiusMin float64
	BondRadiusMax float64
	FormationCost float64 // deducted from each triplet member

	// Allocation.
	PriorityWeight   float64
	DistanceWeight   float64
	GoalRevision     int // ticks before a builder reconsiders its target
	BuildIncrement   float64
	BuildCost        float64
	StationedChance  float64
	StrategyInterval int
	TripletInterval  int

	// Rescue.
	MinRescueFuel float64
	DonorFloor    float64 // fraction of full tank a donor must hold
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() Config {
	const fuelTotal = 100
	return Config{
		NumAgents: 40,

		FuelTotal:    fuelTotal,
		FuelLow:      30,
		FuelCritical: 15,
		ShareCap:     fuelTotal / 3,
		BaseDrain:    0.03,
		BeaconDrain:  0.02,
		StationDrain: 0.01,

		Speed:         0.4,
		WorldBound:    60,
		ArrivalRadius: 2.5,
		ContactRadius: 3,
		BasePos:       Vec3{},

		BondRadius:    8,
		BondRadiusMin: 6,
		BondRadiusMax: 80,
		FormationCost: 30 * 0.2, // FuelLow × 0.2

		PriorityWeight:   0.7,
		DistanceWeight:   0.3,
		GoalRevision:     30,
		BuildIncrement:   0.05,
		BuildCost:        5,
		StationedChance:  0.3,
		StrategyInterval: 600,
		TripletInterval:  120,

		MinRescueFuel: 10,
		DonorFloor:    0.33,
	}
}

// Validate clamps values that must stay in range. It never rejects a
// config; the simulation self-stabilizes rather than halting.
func (c *Config) Validate() {
	if c.NumAgents < 3 {
		c.NumAgents = 3
	}
	if c.FuelTotal <= 0 {
		c.FuelTotal = 100
	}
	c.FuelLow = clamp(c.FuelLow, 0, c.FuelTotal)
	c.FuelCritical = clamp(c.FuelCritical, 0, c.FuelLow)
	c.ShareCap = clamp(c.ShareCap, 0, c.FuelTotal)
	c.StationedChance = clamp(c.StationedChance, 0, 1)
	c.DonorFloor = clamp(c.DonorFloor, 0, 1)
	c.PriorityWeight = clamp(c.PriorityWeight, 0, 1)
	c.DistanceWeight = clamp(c.DistanceWeight, 0, 1)
	if c.BondRadiusMin > c.BondRadiusMax {
		c.BondRadiusMin, c.BondRadiusMax = c.BondRadiusMax, c.BondRadiusMin
	}
	c.BondRadius = clamp(c.BondRadius, c.BondRadiusMin, c.BondRadiusMax)
	if c.GoalRevision < 1 {
		c.GoalRevision = 1
	}
	if c.StrategyInterval < 1 {
		c.StrategyInterval = 1
	}
	if c.TripletInterval < 1 {
		c.TripletInterval = 1
	}
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
