// Package ws provides the real-time order stream: a fan-out hub fed by
// committed transitions and a websocket endpoint that replays an order
// snapshot before streaming live updates.
package ws

import (
	"sync"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/ports"
)

// defaultQueueDepth bounds each subscriber's queue. A subscriber that falls
// this far behind is dropped rather than allowed to stall the publishing
// side.
const defaultQueueDepth = 16

type subscriber struct {
	id      uint64
	orderID kernel.UUID
	updates chan ports.TransitionEvent
}

// Hub fans committed transition events out to per-order subscribers. It
// implements ports.EventPublisher, so command handlers publish through it
// after commit without knowing about websockets.
//
// Every event is stamped with a per-order sequence number, starting at 1,
// before fan-out. Subscribers use the sequence to detect gaps and to
// deduplicate against the snapshot they received on connect.
type Hub struct {
	mu         sync.Mutex
	subs       map[kernel.UUID]map[uint64]*subscriber
	seq        map[kernel.UUID]uint64
	nextID     uint64
	queueDepth int
}

// NewHub creates an empty hub with the default subscriber queue depth.
func NewHub() *Hub {
	return NewHubWithQueueDepth(defaultQueueDepth)
}

// NewHubWithQueueDepth creates an empty hub whose subscriber queues hold
// depth events. Depths below one fall back to the default.
func NewHubWithQueueDepth(depth int) *Hub {
	if depth < 1 {
		depth = defaultQueueDepth
	}

	return &Hub{
		subs:       make(map[kernel.UUID]map[uint64]*subscriber),
		seq:        make(map[kernel.UUID]uint64),
		queueDepth: depth,
	}
}

// Publish stamps the event with the order's next sequence number and
// delivers it to every subscriber of that order. Slow subscribers are
// dropped; Publish never blocks.
func (h *Hub) Publish(event ports.TransitionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq[event.OrderID]++
	event.Seq = h.seq[event.OrderID]

	// Sends stay under the lock so a concurrent cancel cannot close a
	// channel mid-send. They never block: a full queue drops the subscriber.
	for _, sub := range h.subs[event.OrderID] {
		select {
		case sub.updates <- event:
		default:
			h.dropLocked(sub)
		}
	}
}

// Seq returns the last sequence number stamped for the order, 0 when no
// transition has been published yet. Subscribers pair it with a snapshot to
// know where the live stream picks up.
func (h *Hub) Seq(orderID kernel.UUID) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq[orderID]
}

// Subscribe registers interest in one order's transitions. The returned
// cancel function is idempotent and closes the update channel.
func (h *Hub) Subscribe(orderID kernel.UUID) (<-chan ports.TransitionEvent, func()) {
	sub := &subscriber{
		orderID: orderID,
		updates: make(chan ports.TransitionEvent, h.queueDepth),
	}

	h.mu.Lock()
	h.nextID++
	sub.id = h.nextID
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[uint64]*subscriber)
	}
	h.subs[orderID][sub.id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.drop(sub)
		})
	}

	return sub.updates, cancel
}

// SubscriberCount reports how many subscribers an order currently has.
func (h *Hub) SubscriberCount(orderID kernel.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[orderID])
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sub)
}

func (h *Hub) dropLocked(sub *subscriber) {
	orderSubs, ok := h.subs[sub.orderID]
	if !ok {
		return
	}
	if _, ok = orderSubs[sub.id]; !ok {
		return
	}

	delete(orderSubs, sub.id)
	if len(orderSubs) == 0 {
		delete(h.subs, sub.orderID)
	}
	close(sub.updates)
}
