package persist

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// PlayerRecord is the durable account state for one player. The record id is
// the lowercased username.
type PlayerRecord struct {
	Name         string   `json:"name"`
	PasswordHash string   `json:"password_hash"`
	Role         string   `json:"role"`
	Active       bool     `json:"active"`
	Room         string   `json:"room,omitempty"`
	Inventory    []string `json:"inventory,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *PlayerRecord) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("player name is required"))
	}
	if r.PasswordHash == "" {
		el.Add(fmt.Errorf("password_hash is required"))
	}
	if r.Role == "" {
		el.Add(fmt.Errorf("role is required"))
	}

	return el.Err()
}
