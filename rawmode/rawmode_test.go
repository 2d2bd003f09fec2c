package rawmode

import (
	"os"
	"testing"
)

func TestAcquireRejectsNonTerminal(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, err := Acquire(int(f.Fd())); err == nil {
		t.Fatal("expected an error acquiring raw mode on a non-terminal fd")
	}
}

func TestReleaseOnNilGuardIsNoop(t *testing.T) {
	var g *Guard
	if err := g.Release(); err != nil {
		t.Fatalf("Release on nil guard: %v", err)
	}
}

func TestReleaseTwiceIsNoop(t *testing.T) {
	g := &Guard{}
	if err := g.Release(); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}
