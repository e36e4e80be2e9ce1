package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/db"
)

func TestServe_GracefulShutdown(t *testing.T) {
	s, conn := newTestServer(t)

	var exited atomic.Int32
	s.exit = func(code int) { exited.Store(int32(code) + 1) }

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/readyz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "ready"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, db.StateClosed, conn.State())
	assert.False(t, s.Ready())
	assert.Zero(t, exited.Load())

	_, err = http.Get(base + "/healthz")
	assert.Error(t, err)
}

func TestForceExitAfter(t *testing.T) {
	fired := make(chan int, 1)
	forceExitAfter(10*time.Millisecond, func(code int) { fired <- code })

	select {
	case code := <-fired:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("exit was not called")
	}

	stopped := make(chan int, 1)
	timer := forceExitAfter(50*time.Millisecond, func(code int) { stopped <- code })
	assert.True(t, timer.Stop())

	select {
	case <-stopped:
		t.Fatal("exit called after stop")
	case <-time.After(100 * time.Millisecond):
	}
}
