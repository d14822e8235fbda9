// Command townsim runs the agent town simulation headless: it generates a
// procedural layout, synthesizes an agent roster, drives the tick loop,
// and records trajectories to SQLite.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/alttabdlt/ai-arena-sub001/internal/persistence"
	"github.com/alttabdlt/ai-arena-sub001/internal/roster"
	"github.com/alttabdlt/ai-arena-sub001/internal/sim"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

func main() {
	var (
		seed      = flag.Int64("seed", 42, "layout and roster seed")
		radius    = flag.Int("radius", 8, "town radius in grid cells")
		agents    = flag.Int("agents", 24, "roster population")
		dbPath    = flag.String("db", "data/town.db", "trajectory database path")
		pollSecs  = flag.Int("poll", 5, "roster refresh cadence, seconds")
		maxTicks  = flag.Uint64("ticks", 0, "stop after N ticks (0 = run until signal)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Layout (deterministic from seed) ──────────────────────────────
	cfg := town.DefaultGenConfig()
	cfg.Seed = *seed
	cfg.Radius = *radius
	layout := town.Generate(cfg)

	built := 0
	for _, p := range layout.Plots {
		if p.Status == town.StatusBuilt {
			built++
		}
	}
	slog.Info("layout generated",
		"seed", *seed,
		"plots", len(layout.Plots),
		"built", built,
		"segments", len(layout.Segments),
		"signature", fmt.Sprintf("%016x", layout.Signature()),
	)

	db.SaveMeta("layout_seed", fmt.Sprintf("%d", *seed))
	db.SaveMeta("layout_signature", fmt.Sprintf("%016x", layout.Signature()))

	// ── Simulation ────────────────────────────────────────────────────
	world := sim.New(sim.DefaultParams())
	world.SetLayout(layout)
	slog.Info("road graph built",
		"nodes", world.Graph().NodeCount(),
		"edges", world.Graph().EdgeCount(),
	)

	synth := roster.NewSynth(*seed, *agents, layout)
	world.ApplySnapshot(synth.Refresh(1))
	slog.Info("roster spawned", "agents", synth.Count())

	// ── Frame loop ────────────────────────────────────────────────────
	eng := sim.NewEngine()

	pollEvery := uint64(*pollSecs) * 20 // Ticks per refresh at 20 fps.
	if pollEvery == 0 {
		pollEvery = 1
	}

	eng.OnStep = func(dt float64) {
		world.Step(dt)
		if world.Tick()%pollEvery == 0 {
			world.ApplySnapshot(synth.Refresh(world.Tick()))
		}
		if *maxTicks > 0 && world.Tick() >= *maxTicks {
			eng.Stop()
		}
	}

	eng.OnSecond = func() {
		if err := db.RecordTick(world); err != nil {
			slog.Error("record failed", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("Town is alive: %s agents on %s plots (%s built).\n",
		humanize.Comma(int64(synth.Count())),
		humanize.Comma(int64(len(layout.Plots))),
		humanize.Comma(int64(built)),
	)
	fmt.Println("Simulating... (Ctrl+C to stop)")

	eng.Run()

	// Final flush and summary.
	if err := db.RecordTick(world); err != nil {
		slog.Error("final record failed", "error", err)
	}
	db.SaveMeta("last_tick", fmt.Sprintf("%d", world.Tick()))
	db.LogSummary()

	counts := make(map[sim.Kind]int)
	for _, v := range world.Views() {
		counts[v.State]++
	}
	for k, n := range counts {
		slog.Info("final state", "state", k.String(), "agents", n)
	}

	fmt.Printf("Stopped after %s ticks. Trajectories saved.\n",
		humanize.Comma(int64(world.Tick())))
}
