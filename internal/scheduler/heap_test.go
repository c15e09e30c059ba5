package scheduler

import "testing"

func TestHeapPushPopOrdering(t *testing.T) {
	h := &dueHeap{}

	heapPush(h, 30)
	heapPush(h, 10)
	heapPush(h, 20)

	// Pop should return keys in ascending order (min-heap)
	for _, want := range []int64{10, 20, 30} {
		if got := heapPop(h); got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}

func TestHeapEmpty(t *testing.T) {
	h := &dueHeap{}
	if h.Len() != 0 {
		t.Errorf("expected empty heap, got len %d", h.Len())
	}
	if got := heapUpTo(*h, 100); got != nil {
		t.Errorf("expected no keys from empty heap, got %v", got)
	}
}

func TestHeapRemoveDue(t *testing.T) {
	h := &dueHeap{}
	heapPush(h, 1)
	heapPush(h, 2)
	heapPush(h, 3)

	if !heapRemoveDue(h, 2) {
		t.Error("expected removal to succeed")
	}
	if h.Len() != 2 {
		t.Errorf("expected 2 keys after removal, got %d", h.Len())
	}
	if first := heapPop(h); first != 1 {
		t.Errorf("expected 1, got %d", first)
	}
	if second := heapPop(h); second != 3 {
		t.Errorf("expected 3, got %d", second)
	}
}

func TestHeapRemoveDueNotFound(t *testing.T) {
	h := &dueHeap{}
	heapPush(h, 5)

	if heapRemoveDue(h, 6) {
		t.Error("expected removal to fail for unknown key")
	}
	if h.Len() != 1 {
		t.Errorf("expected 1 key to remain, got %d", h.Len())
	}
}

func TestHeapUpToLeavesHeapIntact(t *testing.T) {
	h := &dueHeap{}
	for _, d := range []int64{7, 3, 9, 1, 5} {
		heapPush(h, d)
	}

	got := heapUpTo(*h, 5)
	want := []int64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("heapUpTo = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("heapUpTo = %v, want %v", got, want)
		}
	}
	if h.Len() != 5 {
		t.Errorf("heap modified: len %d, want 5", h.Len())
	}
	if (*h)[0] != 1 {
		t.Errorf("heap root = %d, want 1", (*h)[0])
	}
}
