package scheduler

import "container/heap"

// dueHeap implements container/heap.Interface over bucket due seconds,
// earliest first (min-heap). Each key appears at most once.
type dueHeap []int64

func (h dueHeap) Len() int           { return len(h) }
func (h dueHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h dueHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *dueHeap) Push(x any) {
	*h = append(*h, x.(int64))
}

func (h *dueHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds a due key to the heap, maintaining heap invariant.
func heapPush(h *dueHeap, due int64) {
	heap.Push(h, due)
}

// heapPop removes and returns the earliest due key.
// Panics if the heap is empty.
func heapPop(h *dueHeap) int64 {
	return heap.Pop(h).(int64)
}

// heapRemoveDue removes the given due key.
// Returns true if the key was found and removed, false otherwise.
func heapRemoveDue(h *dueHeap, due int64) bool {
	for i, d := range *h {
		if d == due {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}

// heapUpTo returns every key <= limit in ascending order without
// modifying h.
func heapUpTo(h dueHeap, limit int64) []int64 {
	if len(h) == 0 || h[0] > limit {
		return nil
	}
	scratch := make(dueHeap, len(h))
	copy(scratch, h)
	var out []int64
	for scratch.Len() > 0 && scratch[0] <= limit {
		out = append(out, heapPop(&scratch))
	}
	return out
}
