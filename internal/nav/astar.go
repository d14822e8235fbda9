package nav

import (
	"container/heap"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
)

// FindPath routes from a start world point to a goal world point and
// returns a smoothed sequence of waypoints ending exactly on the goal, or
// nil when no path exists (the caller falls back rather than stalling).
//
// Pure function of (graph, start, goal, params): no hidden mutable state,
// so results are cacheable and the search can move off-thread later.
func FindPath(g *Graph, start, goal geom.Vec2, p Params) []geom.Vec2 {
	s, ok := g.NearestNode(start)
	if !ok {
		return nil
	}
	t, _ := g.NearestNode(goal)

	if s == t {
		return []geom.Vec2{start, goal}
	}

	chain := astar(g, s, t)
	if chain == nil {
		return nil
	}

	pts := make([]geom.Vec2, len(chain))
	for i, id := range chain {
		pts[i] = g.Nodes[id].Pos
	}

	smooth := geom.CatmullRom(pts, p.SamplesPerSpan)

	// The agent starts where it stands and must end exactly on target,
	// not on the snapped nodes.
	route := make([]geom.Vec2, 0, len(smooth)+2)
	route = append(route, start)
	route = append(route, smooth...)
	route = append(route, goal)
	return route
}

// astar runs A* with a Euclidean heuristic scaled by the smallest tone
// weight (edge costs are length × weight, so the scaled heuristic stays
// admissible). Heap ties break on lowest node id for determinism.
func astar(g *Graph, start, goal NodeID) []NodeID {
	n := len(g.Nodes)
	goalPos := g.Nodes[goal].Pos

	gScore := make([]float64, n)
	cameFrom := make([]NodeID, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = -1
		cameFrom[i] = -1
	}

	h := func(id NodeID) float64 {
		return g.Nodes[id].Pos.Dist(goalPos) * g.minWeight
	}

	open := &nodeHeap{}
	heap.Init(open)
	gScore[start] = 0
	heap.Push(open, heapItem{id: start, f: h(start)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(heapItem)
		if closed[cur.id] {
			continue // Stale entry superseded by a cheaper push.
		}
		if cur.id == goal {
			return reconstruct(cameFrom, goal)
		}
		closed[cur.id] = true

		for _, nb := range g.Neighbors(cur.id) {
			if closed[nb.To] {
				continue
			}
			tentative := gScore[cur.id] + nb.Cost
			if gScore[nb.To] >= 0 && tentative >= gScore[nb.To] {
				continue
			}
			gScore[nb.To] = tentative
			cameFrom[nb.To] = cur.id
			heap.Push(open, heapItem{id: nb.To, f: tentative + h(nb.To)})
		}
	}

	return nil
}

func reconstruct(cameFrom []NodeID, goal NodeID) []NodeID {
	var rev []NodeID
	for id := goal; id >= 0; id = cameFrom[id] {
		rev = append(rev, id)
	}
	out := make([]NodeID, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

type heapItem struct {
	id NodeID
	f  float64
}

type nodeHeap []heapItem

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].id < h[j].id
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(heapItem)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
