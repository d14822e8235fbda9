// Command townview renders the agent town simulation live in a terminal.
// It is a pure presentation layer: it samples read-only agent views once
// per frame and steers only through the camera control surface.
//
// Keys: arrows pan, g recenters on the origin tile, f follows the next
// agent (repeat to cycle, c clears), q or ESC quits.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/roster"
	"github.com/alttabdlt/ai-arena-sub001/internal/sim"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

// Cell aspect compensation: terminal cells are roughly twice as tall as
// they are wide.
const (
	cellsPerUnitX = 0.8
	cellsPerUnitY = 0.4
	panStep       = 5.0 // World units per pan key
)

func main() {
	var (
		seed   = flag.Int64("seed", 42, "layout and roster seed")
		radius = flag.Int("radius", 8, "town radius in grid cells")
		agents = flag.Int("agents", 24, "roster population")
	)
	flag.Parse()

	cfg := town.DefaultGenConfig()
	cfg.Seed = *seed
	cfg.Radius = *radius
	layout := town.Generate(cfg)

	world := sim.New(sim.DefaultParams())
	world.SetLayout(layout)
	synth := roster.NewSynth(*seed, *agents, layout)
	world.ApplySnapshot(synth.Refresh(1))

	screen, err := tcell.NewScreen()
	if err != nil {
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	cam := world.Camera()
	cam.FocusTile(0, 0)
	followIdx := -1

	frame := time.NewTicker(50 * time.Millisecond)
	defer frame.Stop()
	last := time.Now()
	pollEvery := uint64(100)

	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case e.Key() == tcell.KeyEscape || e.Rune() == 'q':
					return
				case e.Key() == tcell.KeyUp:
					cam.Pan(0, -panStep)
					followIdx = -1
				case e.Key() == tcell.KeyDown:
					cam.Pan(0, panStep)
					followIdx = -1
				case e.Key() == tcell.KeyLeft:
					cam.Pan(-panStep, 0)
					followIdx = -1
				case e.Key() == tcell.KeyRight:
					cam.Pan(panStep, 0)
					followIdx = -1
				case e.Rune() == 'g':
					cam.FocusTile(0, 0)
					followIdx = -1
				case e.Rune() == 'c':
					cam.SetFollow("")
					followIdx = -1
				case e.Rune() == 'f':
					views := world.Views()
					if len(views) > 0 {
						followIdx = (followIdx + 1) % len(views)
						cam.SetFollow(views[followIdx].ID)
					}
				}
			}

		case now := <-frame.C:
			dt := now.Sub(last).Seconds()
			last = now
			world.Step(dt)
			if world.Tick()%pollEvery == 0 {
				world.ApplySnapshot(synth.Refresh(world.Tick()))
			}
			draw(screen, world, layout)
		}
	}
}

func draw(screen tcell.Screen, world *sim.Simulation, layout town.Layout) {
	screen.Clear()
	w, h := screen.Size()
	focal := world.Camera().FocalPoint()

	toScreen := func(p geom.Vec2) (int, int) {
		x := int((p.X-focal.X)*cellsPerUnitX) + w/2
		y := int((p.Y-focal.Y)*cellsPerUnitY) + h/2
		return x, y
	}

	roadStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, s := range layout.Segments {
		if s.Orientation == town.Horizontal {
			x0, y := toScreen(geom.Vec2{X: s.From, Y: s.At})
			x1, _ := toScreen(geom.Vec2{X: s.To, Y: s.At})
			for x := x0; x <= x1; x++ {
				setIn(screen, w, h, x, y, '─', roadStyle)
			}
		} else {
			x, y0 := toScreen(geom.Vec2{X: s.At, Y: s.From})
			_, y1 := toScreen(geom.Vec2{X: s.At, Y: s.To})
			for y := y0; y <= y1; y++ {
				setIn(screen, w, h, x, y, '│', roadStyle)
			}
		}
	}

	for _, p := range layout.Plots {
		if !p.HasFootprint() {
			continue
		}
		style := tcell.StyleDefault.Foreground(zoneColor(p.Zone))
		r := '█'
		if p.Status == town.StatusUnderConstruction {
			r = '▒'
		}
		c := p.WorldPos()
		x0, y0 := toScreen(geom.Vec2{X: c.X - town.BuildingHalfExtent, Y: c.Y - town.BuildingHalfExtent})
		x1, y1 := toScreen(geom.Vec2{X: c.X + town.BuildingHalfExtent, Y: c.Y + town.BuildingHalfExtent})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				setIn(screen, w, h, x, y, r, style)
			}
		}
	}

	for _, v := range world.Views() {
		x, y := toScreen(v.Pos)
		style := tcell.StyleDefault.Foreground(stateColor(v.State)).Bold(true)
		setIn(screen, w, h, x, y, '@', style)
	}

	status := "arrows pan · g center · f follow · c clear · q quit"
	if id := world.Camera().FollowTarget(); id != "" {
		if v, ok := world.View(id); ok {
			status = "following " + shortID(id) + " [" + v.State.String() + "]"
		}
	}
	barStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	drawText(screen, w, h, 0, h-1, status, barStyle)

	screen.Show()
}

// drawText writes s one screen cell per rune starting at (x, y). Ranging
// over the string directly would advance by byte offset and leave gaps
// after multi-byte runes.
func drawText(screen tcell.Screen, w, h, x, y int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		setIn(screen, w, h, col, y, r, style)
		col++
	}
}

func setIn(screen tcell.Screen, w, h, x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	screen.SetContent(x, y, r, nil, style)
}

func zoneColor(z town.Zone) tcell.Color {
	switch z {
	case town.ZoneResidential:
		return tcell.ColorTeal
	case town.ZoneCommercial:
		return tcell.ColorYellow
	case town.ZoneIndustrial:
		return tcell.ColorMaroon
	default:
		return tcell.ColorGreen
	}
}

func stateColor(k sim.Kind) tcell.Color {
	switch k {
	case sim.KindWalking:
		return tcell.ColorWhite
	case sim.KindIdle:
		return tcell.ColorSilver
	case sim.KindChatting:
		return tcell.ColorAqua
	case sim.KindBuilding, sim.KindMining:
		return tcell.ColorOrange
	case sim.KindShopping, sim.KindPlaying:
		return tcell.ColorYellow
	case sim.KindBegging, sim.KindScheming:
		return tcell.ColorFuchsia
	case sim.KindDead:
		return tcell.ColorRed
	default:
		return tcell.ColorWhite
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
