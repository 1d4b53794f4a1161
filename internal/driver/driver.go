package driver

import (
	"context"
	"time"
)

const (
	// DefaultTickLength is generous: the only periodic work today is chat
	// history pruning.
	DefaultTickLength = time.Minute
)

// Manager is anything with periodic maintenance work.
type Manager interface {
	Tick(context.Context) error
}

// MudDriver runs every manager's Tick on a fixed interval.
type MudDriver struct {
	tickLength time.Duration
	managers   []Manager
}

type MudDriverOpt func(*MudDriver)

func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.tickLength = tickLength
	}
}

func NewMudDriver(managers []Manager, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *MudDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *MudDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
