package geom

import (
	"math"
	"testing"
)

func TestNormalizeZeroSafe(t *testing.T) {
	v := Vec2{}.Normalize()
	if v != (Vec2{}) {
		t.Fatalf("zero vector normalized to %+v, want zero", v)
	}

	u := Vec2{X: 3, Y: 4}.Normalize()
	if math.Abs(u.Len()-1) > 1e-12 {
		t.Fatalf("unit length = %v, want 1", u.Len())
	}
}

func TestDistSqMatchesDist(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}
	if got, want := a.DistSq(b), a.Dist(b)*a.Dist(b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("DistSq = %v, Dist² = %v", got, want)
	}
}

func TestAABBContainsStrict(t *testing.T) {
	box := AABBFromCenter(Vec2{}, 2)

	cases := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"center", Vec2{}, true},
		{"inside", Vec2{X: 1.5, Y: -1.5}, true},
		{"on face", Vec2{X: 2, Y: 0}, false},
		{"corner", Vec2{X: 2, Y: 2}, false},
		{"outside", Vec2{X: 3, Y: 0}, false},
	}
	for _, tc := range cases {
		if got := box.ContainsStrict(tc.p); got != tc.want {
			t.Errorf("%s: ContainsStrict(%+v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestAABBPushOutNearestFace(t *testing.T) {
	box := AABBFromCenter(Vec2{}, 2)

	// Closest to the +X face.
	out := box.PushOut(Vec2{X: 1.5, Y: 0.5}, 0.05)
	if out.X != 2.05 || out.Y != 0.5 {
		t.Fatalf("push through +X face gave %+v", out)
	}
	if box.ContainsStrict(out) {
		t.Fatal("pushed point still strictly inside")
	}

	// Closest to the -Y face.
	out = box.PushOut(Vec2{X: 0.2, Y: -1.8}, 0.05)
	if out.Y != -2.05 || out.X != 0.2 {
		t.Fatalf("push through -Y face gave %+v", out)
	}

	// Outside points are untouched.
	p := Vec2{X: 5, Y: 5}
	if got := box.PushOut(p, 0.05); got != p {
		t.Fatalf("outside point moved: %+v", got)
	}
}

func TestCatmullRomEndpoints(t *testing.T) {
	pts := []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}
	curve := CatmullRom(pts, 4)

	if curve[0] != pts[0] {
		t.Fatalf("curve starts at %+v, want %+v", curve[0], pts[0])
	}
	last := curve[len(curve)-1]
	if last.Dist(pts[len(pts)-1]) > 1e-9 {
		t.Fatalf("curve ends at %+v, want %+v", last, pts[len(pts)-1])
	}
	if want := (len(pts)-1)*4 + 1; len(curve) != want {
		t.Fatalf("curve has %d samples, want %d", len(curve), want)
	}
}

func TestCatmullRomPassesThroughControls(t *testing.T) {
	pts := []Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}}
	curve := CatmullRom(pts, 2)
	// With 2 samples per span, every control point lands on the curve.
	found := false
	for _, c := range curve {
		if c.Dist(pts[1]) < 1e-9 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("middle control point missing from curve %v", curve)
	}
}

func TestCatmullRomShortInputsPassThrough(t *testing.T) {
	two := []Vec2{{X: 0, Y: 0}, {X: 5, Y: 5}}
	got := CatmullRom(two, 4)
	if len(got) != 2 || got[0] != two[0] || got[1] != two[1] {
		t.Fatalf("two-point input altered: %v", got)
	}
}

func TestLerp(t *testing.T) {
	a, b := Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: -10}
	mid := Lerp(a, b, 0.5)
	if mid != (Vec2{X: 5, Y: -5}) {
		t.Fatalf("Lerp midpoint = %+v", mid)
	}
}
