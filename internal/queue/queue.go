// Package queue holds the in-memory work queue and the dispatcher
// that drains it.
package queue

import (
	"sync"

	"fc-landing-bot/internal/types"
)

// Queue is an unbounded FIFO of work items. Webhook handlers push
// from concurrent goroutines; the dispatcher is the single consumer.
// Items are not persisted: a restart drops whatever was queued.
type Queue struct {
	mu    sync.Mutex
	items []types.WorkItem
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends an item in arrival order.
func (q *Queue) Push(item types.WorkItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Pop removes and returns the oldest item, or false when empty.
func (q *Queue) Pop() (types.WorkItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return types.WorkItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
