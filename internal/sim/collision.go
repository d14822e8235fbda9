package sim

import (
	"math"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/rng"
)

// separationPasses bounds the fixed-point iteration; clusters settle in a
// few sweeps and the bound keeps a pathological tick O(passes × n²).
const separationPasses = 8

// resolveSeparation enforces the pairwise minimum distance after all
// agents have moved. A single sweep is not enough: correcting a later
// pair can push an agent back into one already resolved, so the sweep
// repeats until no pair violates (or the pass bound is hit), which is
// what makes the minimum-separation invariant hold at the tick boundary.
func (s *Simulation) resolveSeparation() {
	for pass := 0; pass < separationPasses; pass++ {
		if !s.separationSweep() {
			return
		}
	}
}

// separationSweep walks every i<j pair once, pushing violating pairs
// apart symmetrically; if one side is dead its position holds and the
// living side takes the whole correction. Exact overlaps are broken with
// a hash of the pair's indices, never a live random source, so replays
// reproduce bit-identically and no NaN can appear. Reports whether any
// correction was applied.
func (s *Simulation) separationSweep() bool {
	minSep := s.params.MinSeparation
	minSepSq := minSep * minSep

	moved := false
	n := s.store.Len()
	for i := 0; i < n; i++ {
		a := s.store.At(i)
		for j := i + 1; j < n; j++ {
			b := s.store.At(j)
			aDead := a.State.Kind() == KindDead
			bDead := b.State.Kind() == KindDead
			if aDead && bDead {
				continue
			}

			delta := b.Pos.Sub(a.Pos)
			dSq := delta.LenSq()
			if dSq >= minSepSq {
				continue
			}

			d := math.Sqrt(dSq)
			var dir geom.Vec2
			if d == 0 {
				h := rng.Mix64(uint64(i)<<32 | uint64(uint32(j)))
				angle := float64(h%3600) / 3600 * 2 * math.Pi
				dir = geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
			} else {
				dir = delta.Scale(1 / d)
			}

			// Margin keeps resolved pairs strictly apart, no recurring
			// exact-boundary cases.
			overlap := minSep - d + s.params.ResolveMargin
			switch {
			case aDead:
				b.Pos = b.Pos.Add(dir.Scale(overlap))
			case bDead:
				a.Pos = a.Pos.Sub(dir.Scale(overlap))
			default:
				half := overlap / 2
				a.Pos = a.Pos.Sub(dir.Scale(half))
				b.Pos = b.Pos.Add(dir.Scale(half))
			}
			moved = true
		}
	}
	return moved
}

// resolveBuildings is the second, final pass: any agent strictly inside a
// building footprint is pushed out through the nearest face with a small
// margin, and its route — now invalid — is discarded. Dead agents hold
// position; they were outside every footprint when they died.
func (s *Simulation) resolveBuildings() {
	if s.buildings == nil {
		return
	}
	for i := 0; i < s.store.Len(); i++ {
		a := s.store.At(i)
		if a.State.Kind() == KindDead {
			continue
		}
		if hit := s.buildings.Hit(a.Pos); hit != nil {
			a.Pos = hit.Box.PushOut(a.Pos, s.params.ResolveMargin)
			a.Route = nil
		}
	}
}
