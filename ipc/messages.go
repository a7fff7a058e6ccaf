package ipc

import (
	"github.com/swarmworks/alphaswarm/model"
)

// Message type constants. Viewers switch on these.
const (
	TypeHello    = "hello"
	TypeSnapshot = "snapshot"
	TypeDone     = "done"
)

// HelloMessage is sent by a viewer when it attaches.
type HelloMessage struct {
	Client string `json:"client"`
}

// AgentInfo is the per-agent slice of a snapshot: everything the
// presentation layer needs for position/color/label mapping.
type AgentInfo struct {
	Pos    model.Vec3 `json:"pos"`
	Vel    model.Vec3 `json:"vel"`
	Fuel   float64    `json:"fuel"`
	Status string     `json:"status"`
	Role   string     `json:"role,omitempty"`
}

// TargetInfo is the per-target slice of a snapshot.
type TargetInfo struct {
	Pos      model.Vec3 `json:"pos"`
	Built    bool       `json:"built"`
	Locked   bool       `json:"locked"`
	Progress float64    `json:"progress"`
	Priority float64    `json:"priority"`
}

// SnapshotMessage is the full per-tick state exposed to collaborators.
type SnapshotMessage struct {
	Tick      int             `json:"tick"`
	Agents    []AgentInfo     `json:"agents"`
	Targets   []TargetInfo    `json:"targets"`
	Telemetry model.Telemetry `json:"telemetry"`
	AlphaPos  model.Vec3      `json:"alphaPos"`
}

// DoneMessage announces the terminal condition: all targets built.
type DoneMessage struct {
	Ticks int `json:"ticks"`
}

// Snapshot flattens the simulation state into its wire form.
func Snapshot(st *model.State, alphaPos model.Vec3) SnapshotMessage {
	msg := SnapshotMessage{
		Tick:      st.Tick,
		Agents:    make([]AgentInfo, len(st.Agents)),
		Targets:   make([]TargetInfo, len(st.Targets)),
		Telemetry: st.Telemetry(),
		AlphaPos:  alphaPos,
	}
	for i := range st.Agents {
		a := &st.Agents[i]
		msg.Agents[i] = AgentInfo{
			Pos:    a.Pos,
			Vel:    a.Vel,
			Fuel:   a.Fuel,
			Status: a.Status.String(),
			Role:   a.Role.String(),
		}
	}
	for i := range st.Targets {
		t := &st.Targets[i]
		msg.Targets[i] = TargetInfo{
			Pos:      t.Pos,
			Built:    t.Built,
			Locked:   t.Locked,
			Progress: t.Progress,
			Priority: t.Priority,
		}
	}
	return msg
}
