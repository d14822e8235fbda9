// Package nav builds the navigable road graph from procedural street
// geometry and building entrances, and routes across it with A*.
//
// Rebuilding from an unchanged layout is idempotent: node ids are assigned
// from canonically sorted positions, so equal layouts produce identical
// adjacency and costs and cached routes stay valid across re-renders.
package nav

import (
	"math"
	"sort"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

// NodeID identifies a road node within one built graph.
type NodeID int

// RoadNode is one navigable point, immutable once the graph is built.
type RoadNode struct {
	ID   NodeID
	Pos  geom.Vec2
	Tone town.Tone
}

// RoadEdge connects two nodes with a traversal cost. The graph is
// undirected; each edge is stored once with A < B.
type RoadEdge struct {
	A, B NodeID
	Cost float64
}

// Neighbor is one adjacency entry.
type Neighbor struct {
	To   NodeID
	Cost float64
}

// Params holds the pathfinding tunables. Tone weights bias edge cost so
// agents prefer arterials; they are preferences, not hard rules.
type Params struct {
	RingWeight     float64
	ArterialWeight float64
	LocalWeight    float64
	// EntranceSearchRadius bounds the hunt for a plot's nearest road
	// node. Plots with none in range stay unreachable without error.
	EntranceSearchRadius float64
	// SamplesPerSpan controls spline smoothing density per node pair.
	SamplesPerSpan int
}

// DefaultParams returns the standard routing configuration.
func DefaultParams() Params {
	return Params{
		RingWeight:           0.9,
		ArterialWeight:       0.8,
		LocalWeight:          1.0,
		EntranceSearchRadius: 3 * town.TileSize,
		SamplesPerSpan:       4,
	}
}

func (p Params) toneWeight(t town.Tone) float64 {
	switch t {
	case town.ToneRing:
		return p.RingWeight
	case town.ToneArterial:
		return p.ArterialWeight
	default:
		return p.LocalWeight
	}
}

func (p Params) minToneWeight() float64 {
	return math.Min(p.RingWeight, math.Min(p.ArterialWeight, p.LocalWeight))
}

// Graph owns the road nodes, edges, and adjacency index for one layout.
type Graph struct {
	Nodes []RoadNode
	Edges []RoadEdge

	adj       [][]Neighbor
	entrances map[int]NodeID // plot ID → entrance node
	minWeight float64        // smallest tone weight, keeps the heuristic admissible
}

// posKey quantizes a position for node deduplication. Street geometry is
// tile-aligned, so a fixed 1e-6 grid is far below any real separation.
type posKey struct{ x, y int64 }

func keyOf(p geom.Vec2) posKey {
	return posKey{x: int64(math.Round(p.X * 1e6)), y: int64(math.Round(p.Y * 1e6))}
}

// Build constructs the road graph for a layout: sample each segment at its
// endpoints and at crossings with perpendicular segments, connect
// consecutive samples along each segment, then connect every buildable
// plot's entrance point to its nearest road node.
func Build(l town.Layout, p Params) *Graph {
	g := &Graph{
		entrances: make(map[int]NodeID),
		minWeight: p.minToneWeight(),
	}

	type protoNode struct {
		pos  geom.Vec2
		tone town.Tone
	}
	byKey := make(map[posKey]*protoNode)

	sample := func(pos geom.Vec2, tone town.Tone) {
		k := keyOf(pos)
		if n, ok := byKey[k]; ok {
			// Crossings inherit the strongest classification present.
			if tone < n.tone {
				n.tone = tone
			}
			return
		}
		byKey[k] = &protoNode{pos: pos, tone: tone}
	}

	// Segment samples: endpoints plus perpendicular crossings.
	crossings := make([][]float64, len(l.Segments))
	for i, s := range l.Segments {
		pts := []float64{s.From, s.To}
		for _, o := range l.Segments {
			if o.Orientation == s.Orientation {
				continue
			}
			if o.At >= s.From && o.At <= s.To && s.At >= o.From && s.At <= o.To {
				pts = append(pts, o.At)
			}
		}
		sort.Float64s(pts)
		pts = dedupeFloats(pts)
		crossings[i] = pts
		for _, c := range pts {
			sample(segmentPoint(s, c), s.Tone)
		}
	}

	// Canonical node order: sort by position, then assign ids.
	protos := make([]*protoNode, 0, len(byKey))
	for _, n := range byKey {
		protos = append(protos, n)
	}
	sort.Slice(protos, func(i, j int) bool {
		a, b := protos[i].pos, protos[j].pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	idByKey := make(map[posKey]NodeID, len(protos))
	for i, n := range protos {
		id := NodeID(i)
		g.Nodes = append(g.Nodes, RoadNode{ID: id, Pos: n.pos, Tone: n.tone})
		idByKey[keyOf(n.pos)] = id
	}

	// Edges: consecutive samples along each segment. Overlapping segments
	// can propose the same pair twice; keep the cheapest.
	type pairKey struct{ a, b NodeID }
	edgeCost := make(map[pairKey]float64)
	for i, s := range l.Segments {
		pts := crossings[i]
		w := p.toneWeight(s.Tone)
		for j := 0; j+1 < len(pts); j++ {
			a := idByKey[keyOf(segmentPoint(s, pts[j]))]
			b := idByKey[keyOf(segmentPoint(s, pts[j+1]))]
			if a == b {
				continue // Degenerate zero-length span.
			}
			if a > b {
				a, b = b, a
			}
			cost := g.Nodes[a].Pos.Dist(g.Nodes[b].Pos) * w
			k := pairKey{a, b}
			if old, ok := edgeCost[k]; !ok || cost < old {
				edgeCost[k] = cost
			}
		}
	}

	// Entrance nodes: one per buildable plot with a road node in range.
	roadNodeCount := len(g.Nodes)
	entranceWeight := p.LocalWeight
	plots := make([]town.Plot, len(l.Plots))
	copy(plots, l.Plots)
	sort.Slice(plots, func(i, j int) bool { return plots[i].ID < plots[j].ID })
	for _, plot := range plots {
		if !plot.HasFootprint() {
			continue
		}
		entrance := plot.EntrancePoint()
		nearest, ok := nearestWithin(g.Nodes[:roadNodeCount], entrance, p.EntranceSearchRadius)
		if !ok {
			continue // Unreachable plot; pathfinder falls back.
		}
		id := NodeID(len(g.Nodes))
		g.Nodes = append(g.Nodes, RoadNode{ID: id, Pos: entrance, Tone: town.ToneLocal})
		g.entrances[plot.ID] = id

		a, b := nearest, id
		if a > b {
			a, b = b, a
		}
		edgeCost[pairKey{a, b}] = g.Nodes[a].Pos.Dist(g.Nodes[b].Pos) * entranceWeight
	}

	// Materialize edges in canonical order and build the adjacency index.
	pairs := make([]pairKey, 0, len(edgeCost))
	for k := range edgeCost {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	g.adj = make([][]Neighbor, len(g.Nodes))
	for _, k := range pairs {
		cost := edgeCost[k]
		g.Edges = append(g.Edges, RoadEdge{A: k.a, B: k.b, Cost: cost})
		g.adj[k.a] = append(g.adj[k.a], Neighbor{To: k.b, Cost: cost})
		g.adj[k.b] = append(g.adj[k.b], Neighbor{To: k.a, Cost: cost})
	}

	return g
}

func segmentPoint(s town.RoadSegment, along float64) geom.Vec2 {
	if s.Orientation == town.Horizontal {
		return geom.Vec2{X: along, Y: s.At}
	}
	return geom.Vec2{X: s.At, Y: along}
}

func dedupeFloats(sorted []float64) []float64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func nearestWithin(nodes []RoadNode, p geom.Vec2, radius float64) (NodeID, bool) {
	best := NodeID(-1)
	bestD := radius * radius
	// Strict less keeps the lowest id on exact ties (scan is in id order).
	for i := range nodes {
		if d := nodes[i].Pos.DistSq(p); d < bestD {
			bestD = d
			best = nodes[i].ID
		}
	}
	return best, best >= 0
}

// Neighbors returns the adjacency list of a node. Read-only.
func (g *Graph) Neighbors(id NodeID) []Neighbor {
	if int(id) < 0 || int(id) >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

// NearestNode snaps a world point to its closest node, ties broken by
// lowest node id for determinism. Returns false on an empty graph.
func (g *Graph) NearestNode(p geom.Vec2) (NodeID, bool) {
	if len(g.Nodes) == 0 {
		return -1, false
	}
	best := NodeID(0)
	bestD := g.Nodes[0].Pos.DistSq(p)
	for i := 1; i < len(g.Nodes); i++ {
		// Strict less keeps the lowest id on exact ties.
		if d := g.Nodes[i].Pos.DistSq(p); d < bestD {
			bestD = d
			best = g.Nodes[i].ID
		}
	}
	return best, true
}

// EntranceNode returns the graph node for a plot's entrance, if the plot
// was reachable at build time.
func (g *Graph) EntranceNode(plotID int) (NodeID, bool) {
	id, ok := g.entrances[plotID]
	return id, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.Edges) }
