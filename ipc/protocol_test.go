package ipc

import (
	"encoding/binary"
	"encoding/json"
	"math/rand"
	"net"
	"testing"

	"github.com/swarmworks/alphaswarm/model"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	env, err := NewEnvelope(TypeHello, HelloMessage{Client: "swarmview"})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteEnvelope(client, env)
	}()

	got, err := ReadEnvelope(server)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}

	if got.Type != TypeHello {
		t.Errorf("Type = %q, want %q", got.Type, TypeHello)
	}
	var hello HelloMessage
	if err := json.Unmarshal(got.Data, &hello); err != nil {
		t.Fatalf("unmarshal hello: %v", err)
	}
	if hello.Client != "swarmview" {
		t.Errorf("Client = %q, want %q", hello.Client, "swarmview")
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, length := range []uint32{0, 1<<20 + 1} {
		server, client := net.Pipe()

		go func() {
			binary.Write(client, binary.LittleEndian, length)
		}()

		if _, err := ReadEnvelope(server); err == nil {
			t.Errorf("length %d accepted, want error", length)
		}
		server.Close()
		client.Close()
	}
}

func TestSnapshotFlattens(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.NumAgents = 3
	st := model.NewState(cfg, []model.Vec3{{Y: 5}, {Y: 10}}, rand.New(rand.NewSource(3)))
	st.Tick = 9
	st.Agents[0].Status = model.StatusBeacon
	st.Agents[0].Role = model.RoleCommander
	st.Targets[1].Built = true
	st.Targets[1].Progress = 1

	msg := Snapshot(st, model.Vec3{X: 2})

	if msg.Tick != 9 {
		t.Errorf("Tick = %d, want 9", msg.Tick)
	}
	if len(msg.Agents) != 3 || len(msg.Targets) != 2 {
		t.Fatalf("sizes = %d agents, %d targets", len(msg.Agents), len(msg.Targets))
	}
	if msg.Agents[0].Status != "beacon" || msg.Agents[0].Role != "commander" {
		t.Errorf("agent 0 = %q/%q", msg.Agents[0].Status, msg.Agents[0].Role)
	}
	if msg.Agents[1].Role != "" {
		t.Errorf("agent 1 role = %q, want empty", msg.Agents[1].Role)
	}
	if !msg.Targets[1].Built || msg.Targets[1].Progress != 1 {
		t.Errorf("target 1 = %+v", msg.Targets[1])
	}
	if msg.Telemetry.Completion != 0.5 {
		t.Errorf("Completion = %v, want 0.5", msg.Telemetry.Completion)
	}
	if msg.AlphaPos.X != 2 {
		t.Errorf("AlphaPos = %+v", msg.AlphaPos)
	}
}

func TestPublisherBroadcastAndDetach(t *testing.T) {
	pub := NewPublisher()
	defer pub.Close()

	server, client := net.Pipe()
	defer client.Close()

	go func() {
		env, _ := NewEnvelope(TypeHello, HelloMessage{Client: "test-viewer"})
		WriteEnvelope(client, env)
	}()
	pub.Attach(server)

	pub.mu.Lock()
	if got := pub.conns[server]; got != "test-viewer" {
		t.Errorf("attached name = %q, want %q", got, "test-viewer")
	}
	pub.mu.Unlock()

	go pub.Broadcast(TypeDone, DoneMessage{Ticks: 42})

	env, err := ReadEnvelope(client)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if env.Type != TypeDone {
		t.Errorf("Type = %q, want %q", env.Type, TypeDone)
	}
	var done DoneMessage
	if err := json.Unmarshal(env.Data, &done); err != nil {
		t.Fatalf("unmarshal done: %v", err)
	}
	if done.Ticks != 42 {
		t.Errorf("Ticks = %d, want 42", done.Ticks)
	}

	// A dead connection is dropped on the next broadcast.
	client.Close()
	pub.Broadcast(TypeDone, DoneMessage{Ticks: 43})

	pub.mu.Lock()
	n := len(pub.conns)
	pub.mu.Unlock()
	if n != 0 {
		t.Errorf("conns = %d after failed write, want 0", n)
	}
}
