package ipc

import (
	"encoding/json"
	"log/slog"
	"net"
	"sync"
)

// Publisher fans per-tick snapshots out to attached viewers. The
// simulation never waits on a slow viewer: a failed write detaches the
// connection.
type Publisher struct {
	mu    sync.Mutex
	conns map[net.Conn]string // conn → client name from hello
}

func NewPublisher() *Publisher {
	return &Publisher{conns: make(map[net.Conn]string)}
}

// Attach performs the hello handshake and registers the connection.
// Called from the accept loop; safe alongside Broadcast.
func (p *Publisher) Attach(conn net.Conn) {
	name := "viewer"
	env, err := ReadEnvelope(conn)
	if err == nil && env.Type == TypeHello {
		var hello HelloMessage
		if err := json.Unmarshal(env.Data, &hello); err == nil && hello.Client != "" {
			name = hello.Client
		}
	}

	p.mu.Lock()
	p.conns[conn] = name
	p.mu.Unlock()
	slog.Info("viewer attached", "client", name)
}

// Broadcast sends one envelope to every attached viewer, detaching any
// connection whose write fails.
func (p *Publisher) Broadcast(msgType string, data any) {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		slog.Error("broadcast marshal failed", "type", msgType, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for conn, name := range p.conns {
		if err := WriteEnvelope(conn, env); err != nil {
			slog.Info("viewer detached", "client", name, "error", err)
			conn.Close()
			delete(p.conns, conn)
		}
	}
}

// Close drops all viewer connections.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for conn := range p.conns {
		conn.Close()
		delete(p.conns, conn)
	}
}
