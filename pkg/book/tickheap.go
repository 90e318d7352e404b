package book

import "container/heap"

// tickHeap implements heap.Interface over occupied tick indices. pos tracks
// each tick's slot so a depleted level can be removed from the middle of the
// heap, not just the head.
type tickHeap struct {
	ticks []int
	less  func(i, j int) bool
	pos   map[int]int
}

func newTickHeap(less func(i, j int) bool) *tickHeap {
	return &tickHeap{
		ticks: []int{},
		less:  less,
		pos:   make(map[int]int),
	}
}

func (h *tickHeap) Len() int {
	return len(h.ticks)
}

func (h *tickHeap) Less(i, j int) bool {
	return h.less(h.ticks[i], h.ticks[j])
}

func (h *tickHeap) Swap(i, j int) {
	h.ticks[i], h.ticks[j] = h.ticks[j], h.ticks[i]
	h.pos[h.ticks[i]] = i
	h.pos[h.ticks[j]] = j
}

func (h *tickHeap) Push(x any) {
	tick := x.(int)
	h.pos[tick] = len(h.ticks)
	h.ticks = append(h.ticks, tick)
}

func (h *tickHeap) Pop() any {
	n := len(h.ticks)
	tick := h.ticks[n-1]
	h.ticks = h.ticks[:n-1]
	delete(h.pos, tick)
	return tick
}

func (h *tickHeap) insert(tick int) {
	if _, ok := h.pos[tick]; ok {
		return
	}
	heap.Push(h, tick)
}

func (h *tickHeap) remove(tick int) {
	if i, ok := h.pos[tick]; ok {
		heap.Remove(h, i)
	}
}

func (h *tickHeap) peek() (int, bool) {
	if len(h.ticks) == 0 {
		return 0, false
	}
	return h.ticks[0], true
}
