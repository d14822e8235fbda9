package geom

// CatmullRom interpolates a uniform Catmull-Rom spline through the given
// control points and returns the sampled curve, including the original
// first and last points. samplesPerSpan controls smoothness; values below
// 1 are treated as 1 (which returns the control points unchanged).
//
// Fewer than three control points cannot bend, so they are returned as-is.
func CatmullRom(pts []Vec2, samplesPerSpan int) []Vec2 {
	if len(pts) < 3 {
		out := make([]Vec2, len(pts))
		copy(out, pts)
		return out
	}
	if samplesPerSpan < 1 {
		samplesPerSpan = 1
	}

	out := make([]Vec2, 0, (len(pts)-1)*samplesPerSpan+1)
	out = append(out, pts[0])

	for i := 0; i < len(pts)-1; i++ {
		// Endpoint spans reuse the boundary point as the phantom control.
		p0 := pts[maxInt(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[minInt(i+2, len(pts)-1)]

		for s := 1; s <= samplesPerSpan; s++ {
			t := float64(s) / float64(samplesPerSpan)
			out = append(out, catmullRomPoint(p0, p1, p2, p3, t))
		}
	}
	return out
}

// catmullRomPoint evaluates the uniform Catmull-Rom basis at t in [0, 1].
func catmullRomPoint(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t

	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1.0
	c2 := -1.5*t3 + 2.0*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2

	return Vec2{
		X: c0*p0.X + c1*p1.X + c2*p2.X + c3*p3.X,
		Y: c0*p0.Y + c1*p1.Y + c2*p2.Y + c3*p3.Y,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
