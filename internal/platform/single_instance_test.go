package platform

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSingleInstanceGuard(t *testing.T) {
	appName := fmt.Sprintf("deepwork-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}

	if _, err := AcquireSingleInstance(appName); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	activated := make(chan struct{}, 1)
	go guard.Serve(func() { activated <- struct{}{} })

	if err := ActivateRunningInstance(appName); err != nil {
		t.Fatalf("activate: %v", err)
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the running instance to be activated")
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Fatalf("expected the lock to be free after release: %v", err)
	}
	again.Release()
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("DeepWork")
	if first != portFromName("DeepWork") {
		t.Fatal("port must be deterministic")
	}
	if first < 20000 || first > 39999 {
		t.Fatalf("port %d outside range", first)
	}
}
