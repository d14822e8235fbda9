package nav

import (
	"testing"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

func TestFindPathCross(t *testing.T) {
	g := Build(crossLayout(), DefaultParams())

	start := geom.Vec2{X: -38, Y: 1}
	goal := geom.Vec2{X: 1, Y: 38}
	route := FindPath(g, start, goal, DefaultParams())
	if route == nil {
		t.Fatal("no route across a connected cross")
	}
	if route[0] != start {
		t.Fatalf("route starts at %+v, want %+v", route[0], start)
	}
	if last := route[len(route)-1]; last != goal {
		t.Fatalf("route ends at %+v, want %+v", last, goal)
	}
	if len(route) < 3 {
		t.Fatalf("route has %d points, expected smoothed interior", len(route))
	}
}

func TestFindPathSameNode(t *testing.T) {
	g := Build(crossLayout(), DefaultParams())

	// Both points snap to the center crossing.
	start := geom.Vec2{X: 1, Y: 1}
	goal := geom.Vec2{X: -1, Y: 2}
	route := FindPath(g, start, goal, DefaultParams())
	if len(route) != 2 {
		t.Fatalf("route has %d points, want 2", len(route))
	}
	if route[0] != start || route[1] != goal {
		t.Fatalf("route %+v, want [start goal]", route)
	}
}

func TestFindPathDisconnected(t *testing.T) {
	l := town.Layout{
		Segments: []town.RoadSegment{
			{Orientation: town.Horizontal, At: 0, From: 0, To: 10, Tone: town.ToneLocal},
			{Orientation: town.Horizontal, At: 100, From: 0, To: 10, Tone: town.ToneLocal},
		},
	}
	g := Build(l, DefaultParams())

	route := FindPath(g, geom.Vec2{X: 5, Y: 0}, geom.Vec2{X: 5, Y: 100}, DefaultParams())
	if route != nil {
		t.Fatalf("disconnected islands produced a route: %+v", route)
	}
}

func TestFindPathEmptyGraph(t *testing.T) {
	g := Build(town.Layout{}, DefaultParams())
	if route := FindPath(g, geom.Vec2{}, geom.Vec2{X: 1}, DefaultParams()); route != nil {
		t.Fatalf("empty graph produced a route: %+v", route)
	}
}

func TestFindPathRepeatable(t *testing.T) {
	g := Build(town.Generate(town.SmallTestConfig()), DefaultParams())
	start := geom.Vec2{X: -35, Y: -35}
	goal := geom.Vec2{X: 35, Y: 35}

	a := FindPath(g, start, goal, DefaultParams())
	b := FindPath(g, start, goal, DefaultParams())
	if len(a) != len(b) {
		t.Fatalf("route lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFindPathPrefersArterial(t *testing.T) {
	// Two parallel routes between the same endpoints: a straight local
	// street and a straight arterial one tile over. The detour via the
	// arterial is longer but cheaper under tone weights.
	l := town.Layout{
		Segments: []town.RoadSegment{
			{Orientation: town.Horizontal, At: 0, From: 0, To: 100, Tone: town.ToneLocal},
			{Orientation: town.Horizontal, At: 10, From: 0, To: 100, Tone: town.ToneArterial},
			{Orientation: town.Vertical, At: 0, From: 0, To: 10, Tone: town.ToneLocal},
			{Orientation: town.Vertical, At: 100, From: 0, To: 10, Tone: town.ToneLocal},
		},
	}
	// Local straight shot costs 100; the detour is 10 + 100*w + 10, so a
	// weight of 0.5 makes the arterial strictly cheaper at 70.
	p := DefaultParams()
	p.ArterialWeight = 0.5
	g := Build(l, p)
	route := FindPath(g, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 100, Y: 0}, p)
	if route == nil {
		t.Fatal("no route")
	}
	var sawArterial bool
	for _, pt := range route {
		if pt.Y > 5 {
			sawArterial = true
			break
		}
	}
	if !sawArterial {
		t.Fatal("route ignored the cheaper arterial detour")
	}
}
