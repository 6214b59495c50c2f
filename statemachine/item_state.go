// Package statemachine governs order item status transitions and the
// time-derived burn classification used by the kitchen display.
package statemachine

import (
	"errors"
	"fmt"

	"github.com/haiminh/hotpot-pos/models"
)

// ErrInvalidTransition signals a status change the state machine forbids.
var ErrInvalidTransition = errors.New("invalid item status transition")

// Transition is a valid item status change.
type Transition struct {
	From models.OrderItemStatus
	To   models.OrderItemStatus
}

// validTransitions is the authoritative state machine definition.
// SERVED and CANCELLED are terminal; CANCELLED is reachable from every
// non-terminal state (which surface may cancel is the caller's policy).
var validTransitions = []Transition{
	{From: models.ItemPending, To: models.ItemPreparing},
	{From: models.ItemPreparing, To: models.ItemReady},
	{From: models.ItemReady, To: models.ItemServed},
	{From: models.ItemPending, To: models.ItemCancelled},
	{From: models.ItemPreparing, To: models.ItemCancelled},
	{From: models.ItemReady, To: models.ItemCancelled},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// CanTransition checks whether an item may move between two statuses.
func CanTransition(from, to models.OrderItemStatus) error {
	if transitionSet[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// ValidTransitionsFrom lists the next statuses reachable from a state.
func ValidTransitionsFrom(status models.OrderItemStatus) []models.OrderItemStatus {
	var nexts []models.OrderItemStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// Apply moves the item to newStatus, stamping PrepStartTime the first time
// cooking starts. nowMillis is epoch milliseconds.
func Apply(item *models.OrderItem, newStatus models.OrderItemStatus, nowMillis int64) error {
	if err := CanTransition(item.Status, newStatus); err != nil {
		return err
	}
	if item.Status == models.ItemPending && newStatus == models.ItemPreparing && item.PrepStartTime == 0 {
		item.PrepStartTime = nowMillis
	}
	item.Status = newStatus
	return nil
}

// BurnStatus is the kitchen urgency classification for a waiting item.
type BurnStatus string

const (
	BurnNormal BurnStatus = "NORMAL"
	BurnYellow BurnStatus = "YELLOW"
	BurnRed    BurnStatus = "RED"
)

// ElapsedMinutes is whole minutes between two epoch-millisecond stamps.
func ElapsedMinutes(startMillis, nowMillis int64) int64 {
	return (nowMillis - startMillis) / 60000
}

// ItemBurnStatus classifies how long an item has been waiting: RED past 15
// whole minutes, YELLOW past 10. Counted from prep start when cooking has
// begun, otherwise from order time. Derived per read, never stored.
func ItemBurnStatus(item models.OrderItem, nowMillis int64) BurnStatus {
	start := item.PrepStartTime
	if start == 0 {
		start = item.Timestamp
	}
	elapsed := ElapsedMinutes(start, nowMillis)
	switch {
	case elapsed > 15:
		return BurnRed
	case elapsed > 10:
		return BurnYellow
	default:
		return BurnNormal
	}
}
