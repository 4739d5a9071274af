package realtime

import (
	"sort"
	"sync"

	"github.com/you/classhub/domain"
)

// Subscriber is a live connection that can be put into rooms
type Subscriber interface {
	// Deliver hands ev to the subscriber without blocking and reports
	// whether it was accepted
	Deliver(ev *domain.Event) bool
}

// Hub keeps the many-to-many membership between subscribers and rooms.
// Delivery is best effort: events are not queued for absent subscribers and
// a subscriber with a full buffer misses the event.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[Subscriber]struct{}
	members map[Subscriber]map[string]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[Subscriber]struct{}),
		members: make(map[Subscriber]map[string]struct{}),
	}
}

// Join adds sub to room and reports whether it was not a member before
func (h *Hub) Join(sub Subscriber, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[Subscriber]struct{})
		h.rooms[room] = subs
	}
	if _, ok := subs[sub]; ok {
		return false
	}
	subs[sub] = struct{}{}

	joined, ok := h.members[sub]
	if !ok {
		joined = make(map[string]struct{})
		h.members[sub] = joined
	}
	joined[room] = struct{}{}
	return true
}

// Leave removes sub from room and reports whether it was a member
func (h *Hub) Leave(sub Subscriber, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.leave(sub, room)
}

// LeaveAll removes sub from every room it joined
func (h *Hub) LeaveAll(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range h.members[sub] {
		h.leave(sub, room)
	}
}

func (h *Hub) leave(sub Subscriber, room string) bool {
	subs, ok := h.rooms[room]
	if !ok {
		return false
	}
	if _, ok := subs[sub]; !ok {
		return false
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.rooms, room)
	}
	joined := h.members[sub]
	delete(joined, room)
	if len(joined) == 0 {
		delete(h.members, sub)
	}
	return true
}

// Broadcast implements domain.Broadcaster. It returns how many members
// accepted the event.
func (h *Hub) Broadcast(room, event string, payload any) int {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.rooms[room]))
	for sub := range h.rooms[room] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	if len(subs) == 0 {
		return 0
	}

	ev := domain.NewEvent(event, payload)
	delivered := 0
	for _, sub := range subs {
		if sub.Deliver(ev) {
			delivered++
		}
	}
	return delivered
}

// Rooms returns the rooms sub belongs to, sorted
func (h *Hub) Rooms(sub Subscriber) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms := make([]string, 0, len(h.members[sub]))
	for room := range h.members[sub] {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Members returns the number of subscribers in room
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

var _ domain.Broadcaster = (*Hub)(nil)
