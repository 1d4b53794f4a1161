package driver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks int
	err   error
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks++
	return m.err
}

func TestTick_RunsEveryManager(t *testing.T) {
	a := &countingManager{}
	b := &countingManager{}
	d := NewMudDriver([]Manager{a, b})

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first manager", a.ticks, 1)
	testutil.AssertEqual(t, "second manager", b.ticks, 1)
}

func TestTick_StopsOnError(t *testing.T) {
	a := &countingManager{err: fmt.Errorf("boom")}
	b := &countingManager{}
	d := NewMudDriver([]Manager{a, b})

	if err := d.Tick(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	testutil.AssertEqual(t, "later manager skipped", b.ticks, 0)
}

func TestStart_TicksUntilCancelled(t *testing.T) {
	m := &countingManager{}
	d := NewMudDriver([]Manager{m}, WithTickLength(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ticks == 0 {
		t.Error("expected at least one tick")
	}
}
