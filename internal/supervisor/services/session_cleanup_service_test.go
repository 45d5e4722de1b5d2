// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakeCleaner struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCleaner) CleanupExpired(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return 1, f.err
}

func TestNewSessionCleanupService_DefaultInterval(t *testing.T) {
	svc := NewSessionCleanupService(&fakeCleaner{}, 0)
	if svc.interval != DefaultCleanupInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultCleanupInterval)
	}
	if svc.String() != "session-cleanup" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestSessionCleanupService_Serve(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"sweeps", nil},
		{"keeps running after errors", errors.New("badger: closed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

			cleaner := &fakeCleaner{err: tt.err}
			svc := NewSessionCleanupService(cleaner, 10*time.Millisecond)

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			deadline := time.Now().Add(2 * time.Second)
			for cleaner.calls.Load() < 2 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			cancel()

			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() error = %v, want context.Canceled", err)
			}
			if cleaner.calls.Load() < 2 {
				t.Errorf("CleanupExpired calls = %d, want at least 2", cleaner.calls.Load())
			}
		})
	}
}
