// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/storelens/internal/store"
)

var _ suture.Service = (*ReloadService)(nil)

type mockReloader struct {
	calls atomic.Int32
	err   error
}

func (m *mockReloader) Reload(context.Context) (*store.Snapshot, error) {
	n := m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &store.Snapshot{Version: uint64(n)}, nil
}

func waitForCalls(t *testing.T, m *mockReloader, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for m.calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("reload called %d times, want at least %d", m.calls.Load(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReloadService_StartupOnly(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewReloadService(reloader, ReloadServiceConfig{LoadOnStartup: true}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitForCalls(t, reloader, 1)
	time.Sleep(30 * time.Millisecond)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := reloader.calls.Load(); got != 1 {
		t.Errorf("reload calls = %d, want 1 without an interval", got)
	}
}

func TestReloadService_Schedule(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewReloadService(reloader, ReloadServiceConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitForCalls(t, reloader, 3)
	cancel()
	<-errCh
}

func TestReloadService_FailuresKeepRunning(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{err: errors.New("source down")}
	svc := NewReloadService(reloader, ReloadServiceConfig{
		LoadOnStartup: true,
		Interval:      10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitForCalls(t, reloader, 3)
	select {
	case err := <-errCh:
		t.Fatalf("Serve returned early: %v", err)
	default:
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestReloadService_String(t *testing.T) {
	t.Parallel()

	svc := NewReloadService(&mockReloader{}, ReloadServiceConfig{}, zerolog.Nop())
	if svc.String() != "reload-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
