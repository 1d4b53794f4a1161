package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"
	"github.com/emberfell/mud/internal/auth"
	"github.com/emberfell/mud/internal/driver"
	"github.com/emberfell/mud/internal/engine"
	"github.com/emberfell/mud/internal/listener"
	"github.com/emberfell/mud/internal/messaging"
	"github.com/emberfell/mud/internal/player"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// World and persistence
	catalog, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building world catalog: %w", err)
	}
	gateway, err := cfg.Storage.BuildGateway(cfg.Game.StoreOpts()...)
	if err != nil {
		return nil, fmt.Errorf("building gateway: %w", err)
	}

	sessions := auth.NewRegistry()

	// Live message fanout
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewRoomPublisher(natsServer, sessions, gateway)

	eng, err := engine.NewEngine(catalog, gateway, sessions, publisher, cfg.Game.EngineOpts()...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	// Connection handling
	pm := player.NewManager(eng, gateway, natsServer)
	cm := listener.NewConnectionManager(pm)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lsn, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lsn
	}

	// Periodic maintenance (chat history pruning)
	var driverOpts []driver.MudDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	mudDriver := driver.NewMudDriver([]driver.Manager{gateway}, driverOpts...)

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    mudDriver,
		"listeners": &listeners,
	}, nil
}
