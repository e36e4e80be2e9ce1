package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
)

func defaultExit(code int) {
	_ = zap.L().Sync()
	os.Exit(code)
}

// Run listens on the configured port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := ":" + s.Config.API.Port

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen(%v) -> %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests and closes the persistence connection. If that takes longer than
// the shutdown timeout the process exits with status 1.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info(fmt.Sprintf("starting server at %v", ln.Addr()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.Serve -> %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.Feed.Run(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown(httpServer)
	})

	return g.Wait()
}

func (s *Server) shutdown(httpServer *http.Server) error {
	timeout := s.Config.API.ShutdownTimeout
	s.draining.Store(true)

	zap.L().Info("shutting down", zap.Duration("timeout", timeout))

	watchdog := forceExitAfter(timeout, s.exit)
	defer watchdog.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("httpServer.Shutdown -> %w", err))
	}
	if s.conn != nil {
		if err := s.conn.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("s.conn.Close -> %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	zap.L().Info("server stopped gracefully")

	return nil
}

// forceExitAfter calls exit(1) unless the returned timer is stopped within d.
func forceExitAfter(d time.Duration, exit func(int)) *time.Timer {
	return time.AfterFunc(d, func() {
		zap.L().Error("graceful shutdown timed out, forcing exit", zap.Duration("timeout", d))
		exit(1)
	})
}
