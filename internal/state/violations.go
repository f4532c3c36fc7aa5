// Package state holds the process-lifetime moderation state: per-actor
// violation counters and per-(guild, actor) spam windows. Nothing here is
// persisted; a restart clears it.
package state

import (
	"sync"
)

// Category identifies one counted violation class.
type Category uint8

const (
	CategoryChannelDelete Category = iota
	CategoryRoleDelete
	CategoryForbiddenGrant
	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryChannelDelete:
		return "channel_delete"
	case CategoryRoleDelete:
		return "role_delete"
	case CategoryForbiddenGrant:
		return "forbidden_grant"
	default:
		return "unknown"
	}
}

type actorCounts struct {
	counts [categoryCount]int
}

// ViolationCounters tracks per-actor violation counts. Increments are
// indivisible per actor; counters saturate against the limit rather than
// edge-triggering, so every call at or past the limit reports exceeded.
type ViolationCounters struct {
	mu     sync.Mutex
	actors map[string]*actorCounts
}

func NewViolationCounters() *ViolationCounters {
	return &ViolationCounters{
		actors: make(map[string]*actorCounts),
	}
}

// Record increments the actor's counter for the category and reports whether
// the count has reached limit. Limits of zero or less never trip.
func (v *ViolationCounters) Record(actorID string, cat Category, limit int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	ac, ok := v.actors[actorID]
	if !ok {
		ac = &actorCounts{}
		v.actors[actorID] = ac
	}
	ac.counts[cat]++

	return limit > 0 && ac.counts[cat] >= limit
}

// Count returns the actor's current count for the category.
func (v *ViolationCounters) Count(actorID string, cat Category) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	ac, ok := v.actors[actorID]
	if !ok {
		return 0
	}
	return ac.counts[cat]
}

// Clear drops all counters for an actor. Used when a user is unbanned or
// rejoins for a fresh start.
func (v *ViolationCounters) Clear(actorID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.actors, actorID)
}
