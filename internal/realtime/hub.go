package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventType is the kind of row change being announced
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Tables that publish change events
const (
	TableUsers              = "users"
	TableProjects           = "projects"
	TableProjectTeamMembers = "project_team_members"
	TableScheduledMessages  = "scheduled_messages"
)

const defaultBuffer = 16

// ChangeEvent announces that a row changed. It carries no row data:
// subscribers re-fetch whatever they display.
type ChangeEvent struct {
	Table    string    `json:"table"`
	Type     EventType `json:"type"`
	RecordID uuid.UUID `json:"record_id"`
	At       time.Time `json:"at"`
}

// Filter restricts a subscription to a single row. The zero value matches
// every row of the table.
type Filter struct {
	RecordID uuid.UUID
}

func (f Filter) matches(evt ChangeEvent) bool {
	return f.RecordID == uuid.Nil || f.RecordID == evt.RecordID
}

// Subscription receives the change events of one table
type Subscription struct {
	id     uint64
	table  string
	filter Filter
	events chan ChangeEvent
	hub    *Hub
	once   sync.Once
}

// Events returns the channel events are delivered on. It is closed by Close.
func (s *Subscription) Events() <-chan ChangeEvent {
	return s.events
}

// Table returns the subscribed table name
func (s *Subscription) Table() string {
	return s.table
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub fans change events out to subscribers. Delivery is best effort: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]*Subscription
	next    uint64
	buffer  int
	dropped atomic.Uint64
}

// NewHub creates a hub whose subscriptions buffer up to buffer events
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
	}
}

// Subscribe registers interest in changes to table
func (h *Hub) Subscribe(table string, filter Filter) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	sub := &Subscription{
		id:     h.next,
		table:  table,
		filter: filter,
		events: make(chan ChangeEvent, h.buffer),
		hub:    h,
	}
	h.subs[sub.id] = sub
	return sub
}

// Publish delivers evt to every matching subscriber without blocking
func (h *Hub) Publish(evt ChangeEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.table != evt.Table || !sub.filter.matches(evt) {
			continue
		}
		select {
		case sub.events <- evt:
		default:
			h.dropped.Add(1)
		}
	}
}

// SubscriberCount returns the number of open subscriptions
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many events were skipped because a subscriber was full
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		close(sub.events)
	}
}
