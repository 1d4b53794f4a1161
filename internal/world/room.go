package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Room is a location in the world graph. Exits map a direction label to a
// destination room id and need not be symmetric.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"`
	Items       []string          `json:"items,omitempty"` // item ids present at load
}

// Validate satisfies storage.ValidatingSpec. Cross-references to other rooms
// and items are checked when the catalog is built.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}

	for dir, dest := range r.Exits {
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: destination room id is required", dir))
		}
	}

	return el.Err()
}
