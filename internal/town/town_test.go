package town

import (
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := SmallTestConfig()
	a := Generate(cfg)
	b := Generate(cfg)

	if len(a.Plots) != len(b.Plots) || len(a.Segments) != len(b.Segments) {
		t.Fatalf("same seed produced different layouts: %d/%d plots, %d/%d segments",
			len(a.Plots), len(b.Plots), len(a.Segments), len(b.Segments))
	}
	if a.Signature() != b.Signature() {
		t.Fatalf("same seed produced different signatures: %x vs %x",
			a.Signature(), b.Signature())
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	cfg := SmallTestConfig()
	a := Generate(cfg)
	cfg.Seed++
	b := Generate(cfg)
	if a.Signature() == b.Signature() {
		t.Fatal("different seeds produced identical signatures")
	}
}

func TestSignatureOrderIndependent(t *testing.T) {
	l := Generate(SmallTestConfig())
	if len(l.Plots) < 2 {
		t.Skip("layout too small to reorder")
	}

	shuffled := Layout{
		Plots:    append([]Plot(nil), l.Plots...),
		Segments: append([]RoadSegment(nil), l.Segments...),
	}
	shuffled.Plots[0], shuffled.Plots[1] = shuffled.Plots[1], shuffled.Plots[0]
	shuffled.Segments[0], shuffled.Segments[len(shuffled.Segments)-1] =
		shuffled.Segments[len(shuffled.Segments)-1], shuffled.Segments[0]

	if l.Signature() != shuffled.Signature() {
		t.Fatal("signature depends on field order")
	}
}

func TestSignatureSensitiveToStatus(t *testing.T) {
	l := Generate(SmallTestConfig())
	if len(l.Plots) == 0 {
		t.Skip("no plots generated")
	}
	before := l.Signature()
	if l.Plots[0].Status == StatusBuilt {
		l.Plots[0].Status = StatusEmpty
	} else {
		l.Plots[0].Status = StatusBuilt
	}
	if l.Signature() == before {
		t.Fatal("signature ignored a construction status change")
	}
}

func TestEntrancePointOutsideFootprint(t *testing.T) {
	p := Plot{ID: 1, X: 3, Y: -2, Status: StatusBuilt}
	box := BuildIndex(Layout{Plots: []Plot{p}}).Boxes[0].Box

	e := p.EntrancePoint()
	if box.ContainsStrict(e) {
		t.Fatalf("entrance %+v inside footprint %+v", e, box)
	}
	if d := e.Dist(p.WorldPos()); d < BuildingHalfExtent {
		t.Fatalf("entrance only %v from center, want > half extent", d)
	}
}

func TestEntrancePointOriginFallback(t *testing.T) {
	p := Plot{ID: 1, X: 0, Y: 0, Status: StatusBuilt}
	e := p.EntrancePoint()
	want := EntranceOffset
	if e.X != want || e.Y != 0 {
		t.Fatalf("origin plot entrance = %+v, want {%v 0}", e, want)
	}
}

func TestBuildIndexSkipsNonFootprints(t *testing.T) {
	l := Layout{Plots: []Plot{
		{ID: 1, X: 1, Y: 1, Status: StatusBuilt},
		{ID: 2, X: 3, Y: 1, Status: StatusUnderConstruction},
		{ID: 3, X: 5, Y: 1, Status: StatusClaimed},
		{ID: 4, X: 7, Y: 1, Status: StatusEmpty},
	}}
	idx := BuildIndex(l)
	if len(idx.Boxes) != 2 {
		t.Fatalf("index has %d boxes, want 2 (built + under construction)", len(idx.Boxes))
	}
}

func TestBuildingIndexHit(t *testing.T) {
	p := Plot{ID: 9, X: 0, Y: 0, Status: StatusBuilt}
	idx := BuildIndex(Layout{Plots: []Plot{p}})

	if hit := idx.Hit(p.WorldPos()); hit == nil || hit.PlotID != 9 {
		t.Fatalf("center not hit: %+v", hit)
	}
	if hit := idx.Hit(p.EntrancePoint()); hit != nil {
		t.Fatalf("entrance point reported inside building %d", hit.PlotID)
	}
}

func TestGeneratePlotsOffStreetLines(t *testing.T) {
	cfg := SmallTestConfig()
	l := Generate(cfg)
	for _, p := range l.Plots {
		if p.X%cfg.LocalEvery == 0 || p.Y%cfg.LocalEvery == 0 {
			t.Fatalf("plot %d at (%d,%d) sits on a street line", p.ID, p.X, p.Y)
		}
	}
}

func TestEmptyLayout(t *testing.T) {
	if !(Layout{}).Empty() {
		t.Fatal("zero layout not reported empty")
	}
	if Generate(SmallTestConfig()).Empty() {
		t.Fatal("generated layout reported empty")
	}
}
