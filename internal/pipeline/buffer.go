// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package pipeline

import (
	"sync"
)

// EventBuffer is a bounded FIFO buffer. When full, Push silently evicts
// the oldest element to make room, so producers never block and never
// fail. Safe for concurrent use.
type EventBuffer[T any] struct {
	mu   sync.Mutex
	buf  []T
	head int
	size int

	evicted uint64
}

// NewEventBuffer creates a buffer holding at most capacity elements.
// Capacities below one are raised to one.
func NewEventBuffer[T any](capacity int) *EventBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &EventBuffer[T]{buf: make([]T, capacity)}
}

// Push appends e, evicting the oldest element if the buffer is full.
// It reports whether an eviction occurred.
func (b *EventBuffer[T]) Push(e T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	tail := (b.head + b.size) % len(b.buf)
	b.buf[tail] = e

	if b.size == len(b.buf) {
		b.head = (b.head + 1) % len(b.buf)
		b.evicted++
		return true
	}
	b.size++
	return false
}

// Drain removes and returns up to max elements in insertion order.
// A max below one drains nothing.
func (b *EventBuffer[T]) Drain(max int) []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := max
	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return nil
	}

	out := make([]T, n)
	var zero T
	for i := 0; i < n; i++ {
		out[i] = b.buf[b.head]
		b.buf[b.head] = zero
		b.head = (b.head + 1) % len(b.buf)
	}
	b.size -= n
	return out
}

// Len returns the number of buffered elements.
func (b *EventBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Evicted returns the total number of elements dropped to make room
// since the buffer was created.
func (b *EventBuffer[T]) Evicted() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.evicted
}
