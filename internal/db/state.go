package db

import (
	"context"
	"sync/atomic"
)

// State is the lifecycle of a persistence connection.
type State int32

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Connection is the handle shared by every request. Implementations are safe
// for concurrent use.
type Connection interface {
	State() State
	Close(ctx context.Context) error
}

// Ready reports whether conn is usable right now.
func Ready(conn Connection) bool {
	return conn != nil && conn.State() == StateConnected
}

type tracker struct {
	state atomic.Int32
}

func (t *tracker) State() State {
	return State(t.state.Load())
}

// set moves to s unless the connection is already closed.
func (t *tracker) set(s State) {
	for {
		cur := t.state.Load()
		if State(cur) == StateClosed {
			return
		}
		if t.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

// close moves to StateClosed and reports whether this call made the move.
func (t *tracker) close() bool {
	for {
		cur := t.state.Load()
		if State(cur) == StateClosed {
			return false
		}
		if t.state.CompareAndSwap(cur, int32(StateClosed)) {
			return true
		}
	}
}

// observe applies a state reported by a background monitor. Monitors only
// toggle between connected and disconnected once the handshake is done.
func (t *tracker) observe(s State) {
	for {
		cur := State(t.state.Load())
		if cur != StateConnected && cur != StateDisconnected {
			return
		}
		if t.state.CompareAndSwap(int32(cur), int32(s)) {
			return
		}
	}
}
