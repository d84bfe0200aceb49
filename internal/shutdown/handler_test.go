package shutdown

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestShutdownRunsCleanupsInReverse(t *testing.T) {
	h := New(nil)

	var order []string
	for _, name := range []string{"logger", "cache", "server"} {
		name := name
		h.AddCleanup(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	h.Shutdown()

	want := []string{"server", "cache", "logger"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if h.Context().Err() == nil {
		t.Error("context not cancelled")
	}
}

func TestShutdownContinuesPastFailure(t *testing.T) {
	h := New(nil)

	ran := false
	h.AddCleanup("first", func(context.Context) error {
		ran = true
		return nil
	})
	h.AddCleanup("broken", func(context.Context) error {
		return errors.New("boom")
	})

	h.Shutdown()
	if !ran {
		t.Error("cleanup after a failing step did not run")
	}
}

func TestShutdownOnce(t *testing.T) {
	h := New(nil)

	calls := 0
	h.AddCleanup("count", func(context.Context) error {
		calls++
		return nil
	})

	h.Shutdown()
	h.Shutdown()
	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
}

func TestShutdownWaitsForWork(t *testing.T) {
	h := New(nil)

	finished := make(chan struct{})
	h.Add(1)
	go func() {
		defer h.Done()
		<-h.Context().Done()
		time.Sleep(10 * time.Millisecond)
		close(finished)
	}()

	h.AddCleanup("check", func(context.Context) error {
		select {
		case <-finished:
		default:
			t.Error("cleanup ran before tracked work finished")
		}
		return nil
	})

	h.Shutdown()
}

func TestShutdownTimeout(t *testing.T) {
	h := New(nil)
	h.timeout = 20 * time.Millisecond
	h.Add(1)
	defer h.Done()

	start := time.Now()
	h.Shutdown()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("shutdown blocked for %s", elapsed)
	}
}
