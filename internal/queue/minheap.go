// Package queue provides the two containers the solver strategies share:
// a binary min-heap keyed by a caller-supplied ordering, and a FIFO
// queue with amortized O(1) enqueue/dequeue. Built on container/heap the
// way the standard library intends it to be used — a thin wrapper type
// implementing heap.Interface — rather than hand-rolling heap percolation.
package queue

import "container/heap"

// Less reports whether a sorts before b under the caller's ordering
// (ascending f-score for the reachability search).
type Less[T any] func(a, b T) bool

// MinHeap is a binary min-heap over elements of type T, ordered by a
// caller-supplied Less. Ties are broken arbitrarily.
type MinHeap[T any] struct {
	items []T
	less  Less[T]
}

// NewMinHeap constructs an empty heap using less as the ordering.
func NewMinHeap[T any](less Less[T]) *MinHeap[T] {
	return &MinHeap[T]{less: less}
}

// Len reports the number of elements currently in the heap.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// Push inserts v, restoring the heap invariant in O(log n).
func (h *MinHeap[T]) Push(v T) {
	heap.Push((*heapAdapter[T])(h), v)
}

// Pop removes and returns the minimum element in O(log n). Panics if the
// heap is empty; callers must check Len first.
func (h *MinHeap[T]) Pop() T {
	return heap.Pop((*heapAdapter[T])(h)).(T)
}

// Peek returns the minimum element without removing it.
func (h *MinHeap[T]) Peek() T {
	return h.items[0]
}

// heapAdapter satisfies container/heap.Interface by delegating to the
// MinHeap it wraps, keeping heap.Interface's sort.Interface plumbing out
// of MinHeap's public surface.
type heapAdapter[T any] MinHeap[T]

func (h *heapAdapter[T]) Len() int { return len(h.items) }
func (h *heapAdapter[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *heapAdapter[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *heapAdapter[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *heapAdapter[T]) Pop() any {
	old := h.items
	n := len(old)
	v := old[n-1]
	h.items = old[:n-1]
	return v
}
