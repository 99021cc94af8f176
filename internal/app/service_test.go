package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	api := &stubService{name: "http"}
	worker := &stubService{name: "worker"}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	require.NoError(t, NewRunner(api, worker).Run(ctx, time.Second, zap.NewNop().Sugar()))
	assert.True(t, api.stopped.Load())
	assert.True(t, worker.stopped.Load())
}

func TestRunnerReturnsFirstStartError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &stubService{name: "http", startErr: boom}
	other := &stubService{name: "worker"}

	err := NewRunner(failing, nil, other).Run(context.Background(), time.Second, nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, other.stopped.Load())
}

func TestRunnerRequiresServices(t *testing.T) {
	assert.Error(t, NewRunner(nil).Run(context.Background(), time.Second, nil))
}

func TestHTTPServiceShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	svc := NewHTTPService(addr, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRunner(svc).Run(ctx, time.Second, nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestBuildRunnerValidatesInput(t *testing.T) {
	_, _, err := BuildRunner(nil, ModeAll)
	assert.Error(t, err)
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " Worker "})
	assert.Equal(t, ModeWorker, opts.Mode)
	assert.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	assert.NotNil(t, opts.Logger)

	opts = normalizeOptions(Options{ShutdownTimeout: time.Second})
	assert.Equal(t, ModeAll, opts.Mode)
	assert.Equal(t, time.Second, opts.ShutdownTimeout)
}
