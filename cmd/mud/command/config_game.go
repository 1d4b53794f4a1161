package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/emberfell/mud/internal/engine"
	"github.com/emberfell/mud/internal/persist"
)

type GameConfig struct {
	SpawnRoom        string `json:"spawn_room"`
	ChatHistoryLimit int    `json:"chat_history_limit"`
	ChatRetention    int    `json:"chat_retention"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()

	if c.SpawnRoom == "" {
		el.Add(fmt.Errorf("spawn_room is required"))
	}
	if c.ChatHistoryLimit < 0 {
		el.Add(fmt.Errorf("chat_history_limit must not be negative"))
	}
	if c.ChatRetention < 0 {
		el.Add(fmt.Errorf("chat_retention must not be negative"))
	}

	return el.Err()
}

func (c *GameConfig) EngineOpts() []engine.EngineOpt {
	opts := []engine.EngineOpt{engine.WithSpawnRoom(c.SpawnRoom)}
	if c.ChatHistoryLimit > 0 {
		opts = append(opts, engine.WithChatLimit(c.ChatHistoryLimit))
	}
	return opts
}

func (c *GameConfig) StoreOpts() []persist.StoreOpt {
	var opts []persist.StoreOpt
	if c.ChatRetention > 0 {
		opts = append(opts, persist.WithChatRetention(c.ChatRetention))
	}
	return opts
}
