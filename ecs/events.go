package ecs

import (
	"iter"
	"reflect"
)

type eventBuffer interface {
	reset()
	len() int
}

type eventQueue[T any] struct {
	items []T
}

func (q *eventQueue[T]) reset() {
	clear(q.items)
	q.items = q.items[:0]
}

func (q *eventQueue[T]) len() int {
	return len(q.items)
}

func eventQueueFor[T any](storage *Storage) *eventQueue[T] {
	t := reflect.TypeFor[T]()
	if buf, ok := storage.events[t]; ok {
		return buf.(*eventQueue[T])
	}
	q := &eventQueue[T]{}
	storage.events[t] = q
	return q
}

// Events is a typed queue of T shared by every Events[T] on the same storage.
//
// Events sent before or during a frame are visible to every system that reads
// them later in that frame. Queues are cleared when the frame's commands are
// flushed, before deferred functions run, so an event sent from a deferred
// function is delivered in the next frame.
type Events[T any] struct {
	queue *eventQueue[T]
}

// NewEvents returns an Events accessor bound to storage.
func NewEvents[T any](storage *Storage) *Events[T] {
	e := &Events[T]{}
	e.Init(storage)
	return e
}

// Init binds the accessor to storage.
// This is called automatically by the Scheduler during system registration.
func (e *Events[T]) Init(storage *Storage) {
	e.queue = eventQueueFor[T](storage)
}

// Send appends an event to the queue.
func (e *Events[T]) Send(event T) {
	e.queue.items = append(e.queue.items, event)
}

// Len returns the number of queued events.
func (e *Events[T]) Len() int {
	return len(e.queue.items)
}

// Iter yields queued events in send order. Events sent while iterating are
// yielded as well.
func (e *Events[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < len(e.queue.items); i++ {
			if !yield(e.queue.items[i]) {
				return
			}
		}
	}
}

func (s *Storage) rotateEvents() {
	for _, buf := range s.events {
		buf.reset()
	}
}
