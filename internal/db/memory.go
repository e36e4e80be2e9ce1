package db

import "context"

// Memory is the connection used by the in-process item store. It has no
// remote side, so Connect always succeeds.
type Memory struct {
	tracker
}

func NewMemory() *Memory {
	m := &Memory{}
	m.set(StateConnecting)
	return m
}

func OpenMemory(ctx context.Context) (*Memory, error) {
	m := NewMemory()
	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Memory) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.set(StateConnected)
	return nil
}

// Disconnect simulates losing the remote side.
func (m *Memory) Disconnect() {
	m.observe(StateDisconnected)
}

func (m *Memory) Close(_ context.Context) error {
	m.set(StateClosed)
	return nil
}
