package queue

import "testing"

func TestFIFOPreservesOrder(t *testing.T) {
	q := NewFIFO[int](2)
	for i := 0; i < 20; i++ {
		q.Enqueue(i)
	}
	for i := 0; i < 20; i++ {
		got := q.Dequeue()
		if got != i {
			t.Fatalf("Dequeue() = %d, want %d", got, i)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
}

func TestFIFOGrowsAcrossWrap(t *testing.T) {
	// NewFIFO raises the capacity to 8. After one dequeue the head sits at
	// index 1, so the eighth live element wraps to index 0 and the ninth
	// forces a grow while the contents straddle the wrap.
	q := NewFIFO[int](4)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Dequeue()
	for v := 3; v <= 10; v++ {
		q.Enqueue(v)
	}
	var got []int
	for q.Len() > 0 {
		got = append(got, q.Dequeue())
	}
	want := []int{2, 3, 4, 5, 6, 7, 8, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drained %v, want %v", got, want)
		}
	}
}
