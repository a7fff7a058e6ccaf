package model

// Status is the closed set of agent states. Every subsystem switches
// exhaustively on it; adding a state means teaching every switch about it.
type Status int

const (
	StatusFree Status = iota
	StatusBuilder
	StatusBeacon
	StatusRescue
	StatusReturning
	StatusWeak
	StatusDead
	StatusStationed
)

var statusNames = [...]string{
	StatusFree:      "free",
	StatusBuilder:   "builder",
	StatusBeacon:    "beacon",
	StatusRescue:    "rescue",
	StatusReturning: "returning",
	StatusWeak:      "weak",
	StatusDead:      "dead",
	StatusStationed: "stationed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Mobile reports whether agents in this status move at all. Beacons,
// the dead and stationed agents hold position with zero velocity.
func (s Status) Mobile() bool {
	switch s {
	case StatusBeacon, StatusDead, StatusStationed:
		return false
	case StatusFree, StatusBuilder, StatusRescue, StatusReturning, StatusWeak:
		return true
	}
	return false
}

// Role is meaningful only while an agent's status is StatusBeacon.
type Role int

const (
	RoleNone Role = iota
	RoleCommander
	RoleReserver
)

func (r Role) String() string {
	switch r {
	case RoleCommander:
		return "commander"
	case RoleReserver:
		return "reserver"
	}
	return ""
}

// Handle indexes an agent in the state's arena. Agents never leave the
// population, so a handle stays valid for the whole run; holders must
// still check the referent's status each tick (it may have died).
type Handle int

// NoAgent marks an empty handle slot.
const NoAgent Handle = -1

// NoTarget marks an empty target index.
const NoTarget = -1

// Agent is one satellite. Cross-references are handles/indices into the
// state arena, never pointers, so stale references can't dangle.
type Agent struct {
	Pos    Vec3
	Vel    Vec3
	Fuel   float64
	Status Status
	Role   Role

	// Bond holds the two beacon handles while Status is builder.
	// Both slots are NoAgent otherwise.
	Bond [2]Handle

	// RescueTarget is the victim handle while Status is rescue.
	RescueTarget Handle

	// Target is the index of the locked target point, or NoTarget.
	Target int

	// LastGoalRevision is the tick this agent last (re)acquired a target.
	LastGoalRevision int
}

// Bonded reports whether the agent holds a beacon pair.
func (a *Agent) Bonded() bool {
	return a.Bond[0] != NoAgent && a.Bond[1] != NoAgent
}

// ClearBond drops the beacon pair reference.
func (a *Agent) ClearBond() {
	a.Bond[0] = NoAgent
	a.Bond[1] = NoAgent
}
