package search

// openEntry is one tentative distance for a node. Stale entries (the node
// was closed or relaxed to a shorter distance since) are skipped at pop.
type openEntry struct {
	id    NodeID
	dist  int
	seq   uint64
	index int
}

type openQueue []*openEntry

func (q openQueue) Len() int { return len(q) }

// Less orders by distance, then by insertion so equal-cost ties expand in
// neighbour order and results are reproducible.
func (q openQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x any) {
	e := x.(*openEntry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
