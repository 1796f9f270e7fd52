package source

import (
	"container/heap"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

// Merge combines entry lists into a single list ordered by timestamp (oldest first).
// Timestamps compare as strings. Entries with equal timestamps keep their list order,
// and each list's own order is preserved, so already-sorted inputs merge stably.
func Merge(lists ...[]analyzer.Entry) []analyzer.Entry {
	total := 0
	h := &entryHeap{}
	for i, list := range lists {
		total += len(list)
		if len(list) > 0 {
			*h = append(*h, &cursor{list: list, listIdx: i})
		}
	}
	heap.Init(h)

	merged := make([]analyzer.Entry, 0, total)
	for h.Len() > 0 {
		c := (*h)[0]
		merged = append(merged, c.list[c.pos])
		c.pos++
		if c.pos < len(c.list) {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}

	return merged
}

// cursor tracks the next unread entry of one list.
type cursor struct {
	list    []analyzer.Entry
	listIdx int
	pos     int
}

func (c *cursor) timestamp() string {
	return c.list[c.pos].Timestamp
}

// entryHeap orders cursors by their next entry's timestamp.
type entryHeap []*cursor

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	ti, tj := h[i].timestamp(), h[j].timestamp()
	if ti != tj {
		return ti < tj
	}
	return h[i].listIdx < h[j].listIdx
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*cursor))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
