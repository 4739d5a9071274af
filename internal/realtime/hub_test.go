package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/classhub/domain"
)

// fakeSubscriber records delivered events and can simulate a full buffer
type fakeSubscriber struct {
	mu     sync.Mutex
	events []*domain.Event
	full   bool
}

func (f *fakeSubscriber) Deliver(ev *domain.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.events = append(f.events, ev)
	return true
}

func (f *fakeSubscriber) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Name)
	}
	return out
}

func TestHub_BroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	inA := &fakeSubscriber{}
	inB := &fakeSubscriber{}
	hub.Join(inA, "10A")
	hub.Join(inB, "10B")

	n := hub.Broadcast("10A", domain.EventHomeworkCreated, domain.HomeworkPayload{Homework: &domain.Homework{ID: 1, ClassID: "10A"}})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{domain.EventHomeworkCreated}, inA.names())
	assert.Empty(t, inB.names())

	n = hub.Broadcast("10B", domain.EventHomeworkCreated, nil)
	assert.Equal(t, 1, n)
	assert.Len(t, inA.names(), 1)
	assert.Len(t, inB.names(), 1)
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := &fakeSubscriber{}

	assert.True(t, hub.Join(sub, "10A"))
	assert.False(t, hub.Join(sub, "10A"))
	assert.Equal(t, 1, hub.Members("10A"))

	hub.Broadcast("10A", domain.EventHomeworkDeleted, domain.HomeworkDeletedPayload{ID: 1})
	assert.Len(t, sub.names(), 1, "a double join must not double deliver")
}

func TestHub_LeaveAndMultipleRooms(t *testing.T) {
	hub := NewHub()
	sub := &fakeSubscriber{}

	hub.Join(sub, "10A")
	hub.Join(sub, "10B")
	hub.Join(sub, domain.UserRoom(7))
	assert.Equal(t, []string{"10A", "10B", "user:7"}, hub.Rooms(sub))

	assert.False(t, hub.Leave(sub, "11C"), "leaving a room one is not in is a no-op")
	assert.True(t, hub.Leave(sub, "10A"))
	assert.Equal(t, []string{"10B", "user:7"}, hub.Rooms(sub))
	assert.Zero(t, hub.Members("10A"))
	assert.Zero(t, hub.Broadcast("10A", domain.EventHomeworkCreated, nil))

	hub.LeaveAll(sub)
	assert.Empty(t, hub.Rooms(sub))
	assert.Zero(t, hub.Members("10B"))
}

func TestHub_FullSubscriberDropsEvent(t *testing.T) {
	hub := NewHub()
	ok := &fakeSubscriber{}
	full := &fakeSubscriber{full: true}
	hub.Join(ok, "10A")
	hub.Join(full, "10A")

	assert.Equal(t, 1, hub.Broadcast("10A", domain.EventHomeworkUpdated, nil))
	assert.Len(t, ok.names(), 1)
	assert.Empty(t, full.names())
}

func TestHub_ConcurrentMembership(t *testing.T) {
	hub := NewHub()
	subs := make([]*fakeSubscriber, 50)
	for i := range subs {
		subs[i] = &fakeSubscriber{}
	}

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub *fakeSubscriber) {
			defer wg.Done()
			room := fmt.Sprintf("room-%d", i%5)
			hub.Join(sub, room)
			hub.Join(sub, "all")
			hub.Broadcast("all", domain.EventNotification, nil)
			if i%2 == 0 {
				hub.Leave(sub, room)
			}
		}(i, sub)
	}
	wg.Wait()

	require.Equal(t, len(subs), hub.Members("all"))
	total := 0
	for i := 0; i < 5; i++ {
		total += hub.Members(fmt.Sprintf("room-%d", i))
	}
	assert.Equal(t, len(subs)/2, total)
}
