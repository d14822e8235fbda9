package sim

import (
	"testing"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

// testLayout is a small cross of arterials with two built plots tucked into
// the quadrants, enough structure for routing without generator noise.
func testLayout() town.Layout {
	return town.Layout{
		Segments: []town.RoadSegment{
			{Orientation: town.Horizontal, At: 0, From: -40, To: 40, Tone: town.ToneArterial},
			{Orientation: town.Vertical, At: 0, From: -40, To: 40, Tone: town.ToneArterial},
			{Orientation: town.Horizontal, At: 20, From: -40, To: 40, Tone: town.ToneLocal},
		},
		Plots: []town.Plot{
			{ID: 1, X: 1, Y: 1, Zone: town.ZoneCommercial, Status: town.StatusBuilt},
			{ID: 2, X: -1, Y: 1, Zone: town.ZoneResidential, Status: town.StatusBuilt},
		},
	}
}

func newTestSim(p Params) *Simulation {
	s := New(p)
	s.SetLayout(testLayout())
	return s
}

func rosterOf(ids ...string) Snapshot {
	snap := Snapshot{}
	for _, id := range ids {
		snap.Agents = append(snap.Agents, RosterAgent{
			ID:             id,
			Archetype:      "balanced",
			Bankroll:       500,
			Health:         100,
			LastTargetPlot: -1,
		})
	}
	return snap
}

func stepN(s *Simulation, n int, dt float64) {
	for i := 0; i < n; i++ {
		s.Step(dt)
	}
}

func TestIdleWalkCycle(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1"))

	a := s.store.Get("a1")
	if a.State.Kind() != KindWalking {
		t.Fatalf("spawned in %v, want walking", a.State.Kind())
	}

	// No route and no signals: first step drops into idle.
	s.Step(0.1)
	if a.State.Kind() != KindIdle {
		t.Fatalf("state after first step = %v, want idle", a.State.Kind())
	}

	// The idle deadline is at most IdleMax; walking resumes with a route.
	sawRoute := false
	for i := 0; i < 500; i++ {
		s.Step(0.1)
		if a.State.Kind() == KindWalking && len(a.Route) > 0 {
			sawRoute = true
			break
		}
	}
	if !sawRoute {
		t.Fatal("agent never resumed walking with a destination route")
	}

	var sawToIdle, sawToWalking bool
	for _, tr := range s.DrainTransitions() {
		if tr.From == KindWalking && tr.To == KindIdle {
			sawToIdle = true
		}
		if tr.From == KindIdle && tr.To == KindWalking {
			sawToWalking = true
		}
	}
	if !sawToIdle || !sawToWalking {
		t.Fatalf("transition log missing the idle cycle: toIdle=%v toWalking=%v", sawToIdle, sawToWalking)
	}
}

func TestDeathIsTerminal(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1"))

	a := s.store.Get("a1")
	a.Health = 0
	s.Step(0.1)
	if a.State.Kind() != KindDead {
		t.Fatalf("state = %v, want dead", a.State.Kind())
	}

	// Dead agents ignore everything, including recovered health.
	pos := a.Pos
	a.Health = 100
	stepN(s, 20, 0.1)
	if a.State.Kind() != KindDead {
		t.Fatalf("dead agent transitioned to %v", a.State.Kind())
	}
	if a.Pos != pos {
		t.Fatalf("dead agent moved from %+v to %+v", pos, a.Pos)
	}
}

func TestChatPairingAndEnding(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 1
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1", "a2"))

	a := s.store.Get("a1")
	b := s.store.Get("a2")
	a.Pos = geom.Vec2{X: 0, Y: 0}
	b.Pos = geom.Vec2{X: 2, Y: 0}

	s.Step(0.1)

	ast, ok := a.State.(Chatting)
	if !ok {
		t.Fatalf("initiator state = %v, want chatting", a.State.Kind())
	}
	bst, ok := b.State.(Chatting)
	if !ok {
		t.Fatalf("partner state = %v, want chatting", b.State.Kind())
	}
	if ast.Partner != "a2" || bst.Partner != "a1" {
		t.Fatalf("pairing mismatch: %q / %q", ast.Partner, bst.Partner)
	}
	if ast.Deadline != bst.Deadline {
		t.Fatalf("chat deadlines differ: %v vs %v", ast.Deadline, bst.Deadline)
	}
	if a.RelPartner != "a2" || b.RelPartner != "a1" {
		t.Fatalf("relationship not recorded: %q / %q", a.RelPartner, b.RelPartner)
	}

	// Block re-pairing, then run the shared timer out.
	s.params.ChatChance = 0
	for i := 0; i < 400; i++ {
		s.Step(0.1)
		if a.State.Kind() != KindChatting && b.State.Kind() != KindChatting {
			break
		}
	}
	if a.State.Kind() == KindChatting || b.State.Kind() == KindChatting {
		t.Fatal("chat never ended")
	}
	if a.RelPartner != "a2" {
		t.Fatalf("relationship dropped on chat end: %q", a.RelPartner)
	}
}

func TestChatEndsWhenPartnerVanishes(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 1
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1", "a2"))

	a := s.store.Get("a1")
	b := s.store.Get("a2")
	a.Pos = geom.Vec2{}
	b.Pos = geom.Vec2{X: 1}
	s.Step(0.1)
	if a.State.Kind() != KindChatting {
		t.Fatalf("state = %v, want chatting", a.State.Kind())
	}

	s.params.ChatChance = 0
	s.ApplySnapshot(rosterOf("a1")) // a2 leaves the roster
	s.Step(0.1)
	if a.State.Kind() == KindChatting {
		t.Fatal("chat survived the partner's departure")
	}
}

func TestDistressStates(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	p.SchemeChance = 1
	p.BegChance = 1
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1", "a2"))

	broke := s.store.Get("a1")
	broke.Bankroll = 5 // below critical
	poor := s.store.Get("a2")
	poor.Bankroll = 50 // below low, above critical
	poor.Pos = geom.Vec2{X: 30, Y: 30}

	s.Step(0.1)
	if broke.State.Kind() != KindScheming {
		t.Fatalf("critical bankroll state = %v, want scheming", broke.State.Kind())
	}
	if poor.State.Kind() != KindBegging {
		t.Fatalf("low bankroll state = %v, want begging", poor.State.Kind())
	}

	// Flavor states revert to walking when their timer expires.
	s.params.SchemeChance = 0
	s.params.BegChance = 0
	reverted := false
	for i := 0; i < 400; i++ {
		s.Step(0.1)
		if broke.State.Kind() != KindScheming && poor.State.Kind() != KindBegging {
			reverted = true
			break
		}
	}
	if !reverted {
		t.Fatal("distress states never expired")
	}
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		tag  string
		want ActionKind
	}{
		{"build", ActionBuild},
		{"construct", ActionBuild},
		{"shop", ActionShop},
		{"trade", ActionShop},
		{"mine", ActionMine},
		{"gather", ActionMine},
		{"play", ActionPlay},
		{"gamble", ActionPlay},
		{"", ActionNone},
		{"dance", ActionNone},
	}
	for _, c := range cases {
		if got := ParseAction(c.tag); got != c.want {
			t.Errorf("ParseAction(%q) = %v, want %v", c.tag, got, c.want)
		}
	}
}

// An external "build" signal routes the agent to the plot entrance and
// enters the building state on arrival, without ever standing inside the
// footprint.
func TestActionSignalRoutesToPlot(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1"))

	a := s.store.Get("a1")
	a.Pos = geom.Vec2{X: 20, Y: 0}
	a.Heading = geom.Vec2{X: 1, Y: 0}

	s.ApplySnapshot(Snapshot{Agents: []RosterAgent{{
		ID:             "a1",
		Archetype:      "balanced",
		Bankroll:       500,
		Health:         100,
		LastActionType: "build",
		LastTargetPlot: 1,
		LastActionAt:   1,
	}}})

	plot := s.Layout().PlotByID(1)
	box := geom.AABBFromCenter(plot.WorldPos(), town.BuildingHalfExtent)

	reached := false
	for i := 0; i < 2000; i++ {
		s.Step(0.05)
		if box.ContainsStrict(a.Pos) {
			t.Fatalf("agent entered the footprint at %+v on step %d", a.Pos, i)
		}
		if a.State.Kind() == KindBuilding {
			reached = true
			break
		}
	}
	if !reached {
		t.Fatalf("agent never reached the building state; pos %+v state %v", a.Pos, a.State.Kind())
	}

	// The signal was consumed: no pending action remains.
	if a.pendingAction != ActionNone || a.pendingPlot != -1 {
		t.Fatalf("signal not consumed: %v plot %d", a.pendingAction, a.pendingPlot)
	}
}

// A signal arriving mid-wander must preempt the old route: the next
// walking tick routes to the target plot's entrance, not to the stale
// destination.
func TestActionSignalPreemptsWanderRoute(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)
	s.ApplySnapshot(rosterOf("a1"))

	a := s.store.Get("a1")
	a.Pos = geom.Vec2{X: 20, Y: 0}
	a.Route = []geom.Vec2{{X: -40, Y: 0}, {X: -40, Y: 20}} // wander leg, far from plot 1

	s.ApplySnapshot(Snapshot{Agents: []RosterAgent{{
		ID:             "a1",
		Archetype:      "balanced",
		Bankroll:       500,
		Health:         100,
		LastActionType: "build",
		LastTargetPlot: 1,
		LastActionAt:   1,
	}}})

	s.Step(0.05)

	entrance := s.Layout().PlotByID(1).EntrancePoint()
	if len(a.Route) == 0 {
		t.Fatal("no route after the signal was serviced")
	}
	if last := a.Route[len(a.Route)-1]; last != entrance {
		t.Fatalf("route ends at %+v, want the plot entrance %+v", last, entrance)
	}
}

func TestStaleActionSignalIgnored(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)

	snap := Snapshot{Agents: []RosterAgent{{
		ID: "a1", Archetype: "balanced", Bankroll: 500, Health: 100,
		LastActionType: "mine", LastTargetPlot: 1, LastActionAt: 7,
	}}}
	s.ApplySnapshot(snap)
	a := s.store.Get("a1")
	if a.pendingAction != ActionMine {
		t.Fatalf("pending = %v, want mine", a.pendingAction)
	}

	// Consume it, then re-apply the same timestamp: no re-arm.
	a.pendingAction = ActionNone
	a.pendingPlot = -1
	s.ApplySnapshot(snap)
	if a.pendingAction != ActionNone {
		t.Fatalf("stale signal re-armed: %v", a.pendingAction)
	}
}

func TestInvalidPlotSignalDropped(t *testing.T) {
	p := DefaultParams()
	p.ChatChance = 0
	s := newTestSim(p)
	s.ApplySnapshot(Snapshot{Agents: []RosterAgent{{
		ID: "a1", Archetype: "balanced", Bankroll: 500, Health: 100,
		LastActionType: "shop", LastTargetPlot: 999, LastActionAt: 1,
	}}})

	a := s.store.Get("a1")
	s.Step(0.1)
	if a.pendingAction != ActionNone {
		t.Fatalf("unknown plot signal survived: %v", a.pendingAction)
	}
	if a.State.Kind() == KindShopping {
		t.Fatal("agent entered an action state for an unknown plot")
	}
}
