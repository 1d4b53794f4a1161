package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/emberfell/mud/internal/persist"
	"github.com/emberfell/mud/internal/storage"
	"github.com/emberfell/mud/internal/world"
)

type StorageConfig struct {
	Rooms   AssetConfig[*world.Room]           `json:"rooms"`
	Items   AssetConfig[*world.Item]           `json:"items"`
	Players AssetConfig[*persist.PlayerRecord] `json:"players"`
	ChatDB  string                             `json:"chat_db"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Players.Validate("players"))
	if c.ChatDB == "" {
		el.Add(fmt.Errorf("chat_db: path is required"))
	}
	return el.Err()
}

// BuildCatalog loads the room and item assets and cross-checks references.
func (c *StorageConfig) BuildCatalog() (*world.Catalog, error) {
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	catalog, err := world.NewCatalog(rooms, items)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return catalog, nil
}

// BuildGateway assembles the persistence gateway: player records on disk,
// chat history in SQLite.
func (c *StorageConfig) BuildGateway(opts ...persist.StoreOpt) (*persist.Store, error) {
	players, err := c.Players.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}
	chat, err := persist.OpenChatLog(c.ChatDB)
	if err != nil {
		return nil, fmt.Errorf("opening chat log: %w", err)
	}

	return persist.NewStore(players, chat, opts...), nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
