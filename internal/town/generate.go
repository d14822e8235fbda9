// Procedural town generation using layered simplex noise.
// A ring road bounds the town, two arterials cross at the center, and
// local streets fill the grid between them. Plots occupy the cells off the
// street lines, with noise deciding occupancy, zoning, and construction
// progress so towns come out organic rather than uniform-random.
package town

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds town generation parameters.
type GenConfig struct {
	Seed       int64   // Noise seed; equal seeds produce identical layouts
	Radius     int     // Town half-width in grid cells
	LocalEvery int     // Grid period of local streets (cells)
	Occupancy  float64 // Noise threshold above which a cell holds a plot
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:       1,
		Radius:     8,
		LocalEvery: 2,
		Occupancy:  0.35,
	}
}

// SmallTestConfig returns a tiny town for rapid iteration and tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:       42,
		Radius:     4,
		LocalEvery: 2,
		Occupancy:  0.30,
	}
}

// Generate creates a complete town layout. Deterministic: the same config
// always yields field-identical plots and segments in the same order.
func Generate(cfg GenConfig) Layout {
	if cfg.Radius < 2 {
		cfg.Radius = 2
	}
	if cfg.LocalEvery < 2 {
		cfg.LocalEvery = 2
	}

	// Independent noise layers, offset seeds as in terrain generation.
	occNoise := opensimplex.NewNormalized(cfg.Seed)
	zoneNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	statusNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	var l Layout
	extent := float64(cfg.Radius) * TileSize

	// Ring road: four segments bounding the town.
	l.Segments = append(l.Segments,
		RoadSegment{Orientation: Horizontal, At: -extent, From: -extent, To: extent, Tone: ToneRing},
		RoadSegment{Orientation: Horizontal, At: extent, From: -extent, To: extent, Tone: ToneRing},
		RoadSegment{Orientation: Vertical, At: -extent, From: -extent, To: extent, Tone: ToneRing},
		RoadSegment{Orientation: Vertical, At: extent, From: -extent, To: extent, Tone: ToneRing},
	)

	// Arterial cross through the center.
	l.Segments = append(l.Segments,
		RoadSegment{Orientation: Horizontal, At: 0, From: -extent, To: extent, Tone: ToneArterial},
		RoadSegment{Orientation: Vertical, At: 0, From: -extent, To: extent, Tone: ToneArterial},
	)

	// Local streets on the remaining periodic grid lines.
	for g := -cfg.Radius + 1; g < cfg.Radius; g++ {
		if g == 0 || g%cfg.LocalEvery != 0 {
			continue // Center lines are arterials; off-period lines are plots.
		}
		at := float64(g) * TileSize
		l.Segments = append(l.Segments,
			RoadSegment{Orientation: Horizontal, At: at, From: -extent, To: extent, Tone: ToneLocal},
			RoadSegment{Orientation: Vertical, At: at, From: -extent, To: extent, Tone: ToneLocal},
		)
	}

	// Plots fill cells that do not sit on a street line.
	nextID := 1
	for y := -cfg.Radius + 1; y < cfg.Radius; y++ {
		for x := -cfg.Radius + 1; x < cfg.Radius; x++ {
			if x%cfg.LocalEvery == 0 || y%cfg.LocalEvery == 0 {
				continue
			}

			// Sample noise in cell space; scale keeps features a few
			// cells wide.
			fx, fy := float64(x)*0.35, float64(y)*0.35
			if occNoise.Eval2(fx, fy) < cfg.Occupancy {
				continue
			}

			p := Plot{
				ID:     nextID,
				X:      x,
				Y:      y,
				Zone:   zoneFor(zoneNoise.Eval2(fx, fy)),
				Status: statusFor(statusNoise.Eval2(fx, fy)),
			}
			nextID++
			l.Plots = append(l.Plots, p)
		}
	}

	return l
}

func zoneFor(n float64) Zone {
	switch {
	case n < 0.4:
		return ZoneResidential
	case n < 0.65:
		return ZoneCommercial
	case n < 0.85:
		return ZoneIndustrial
	default:
		return ZonePark
	}
}

func statusFor(n float64) Status {
	switch {
	case n < 0.15:
		return StatusEmpty
	case n < 0.3:
		return StatusClaimed
	case n < 0.5:
		return StatusUnderConstruction
	default:
		return StatusBuilt
	}
}
