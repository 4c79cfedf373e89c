package scheduler

// idleHeap is a container/heap min-heap of idle workers keyed by fatigue.
// Fatigue only changes while a worker is busy, so keys are stable while a
// worker sits in the heap.
type idleHeap []*worker

func (h idleHeap) Len() int { return len(h) }

func (h idleHeap) Less(i, j int) bool {
	fi, fj := h[i].fatigue(), h[j].fatigue()
	if fi == fj {
		return h[i].id < h[j].id
	}
	return fi < fj
}

func (h idleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *idleHeap) Push(x any) { *h = append(*h, x.(*worker)) }

func (h *idleHeap) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return w
}
