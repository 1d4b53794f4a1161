package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Item is a static catalog entry. Items are never created or destroyed at
// runtime, only moved between a room and a player's inventory.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}

	return el.Err()
}
