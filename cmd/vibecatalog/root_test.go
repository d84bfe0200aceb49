package main

import (
	"sync/atomic"
	"testing"
	"time"

	"vibecatalog/internal/shutdown"
)

func TestTrackedFetchDelaysShutdown(t *testing.T) {
	a := &app{sh: shutdown.New(nil)}

	started := make(chan struct{})
	var finished atomic.Bool
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.track(func() error {
			close(started)
			<-a.sh.Context().Done()
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
			return a.sh.Context().Err()
		})
	}()
	<-started

	a.sh.Shutdown()
	if !finished.Load() {
		t.Error("shutdown returned before the tracked fetch finished")
	}
	if err := <-errCh; err == nil {
		t.Error("tracked fetch should report the cancelled context")
	}
}
