package engine

import (
	"fmt"
	"slices"
	"strings"
)

// GetInventory lists the items the player is carrying.
func (e *Engine) GetInventory(username string) (string, error) {
	inventory, err := e.gateway.Inventory(username)
	if err != nil {
		return "", fmt.Errorf("loading inventory: %w", err)
	}
	if len(inventory) == 0 {
		return "Your inventory is empty.", nil
	}

	var b strings.Builder
	b.WriteString("Your inventory:\n")
	for _, itemId := range inventory {
		if item := e.catalog.Item(itemId); item != nil {
			fmt.Fprintf(&b, "  - %s\n", item.Name)
		}
	}
	return b.String(), nil
}

// PickupItem moves an item, matched by display name, from the room floor
// into the player's inventory.
func (e *Engine) PickupItem(username, itemName string) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	unlock := e.rooms.lock(roomId)
	defer unlock()

	state := e.rooms.get(roomId)
	if state == nil {
		return "", NewUserError("You are not in a valid room.")
	}

	itemId, ok := e.catalog.FindItem(itemName, state.listLocked())
	if !ok {
		return "", NewUserErrorf("There is no '%s' here.", itemName)
	}

	inventory, err := e.gateway.Inventory(username)
	if err != nil {
		return "", fmt.Errorf("loading inventory: %w", err)
	}
	if !slices.Contains(inventory, itemId) {
		inventory = append(inventory, itemId)
		if err := e.gateway.SetInventory(username, inventory); err != nil {
			return "", fmt.Errorf("saving inventory: %w", err)
		}
	}

	delete(state.items, itemId)

	return fmt.Sprintf("You picked up the %s.", e.catalog.Item(itemId).Name), nil
}

// DropItem moves an item from the player's inventory onto the room floor,
// where anyone present can pick it up again.
func (e *Engine) DropItem(username, itemName string) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	inventory, err := e.gateway.Inventory(username)
	if err != nil {
		return "", fmt.Errorf("loading inventory: %w", err)
	}

	itemId, ok := e.catalog.FindItem(itemName, inventory)
	if !ok {
		return "", NewUserErrorf("You don't have a '%s'.", itemName)
	}

	unlock := e.rooms.lock(roomId)
	defer unlock()

	inventory = slices.DeleteFunc(inventory, func(id string) bool { return id == itemId })
	if err := e.gateway.SetInventory(username, inventory); err != nil {
		return "", fmt.Errorf("saving inventory: %w", err)
	}

	if state := e.rooms.get(roomId); state != nil {
		state.items[itemId] = true
	}

	return fmt.Sprintf("You dropped the %s.", e.catalog.Item(itemId).Name), nil
}
