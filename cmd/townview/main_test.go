package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDrawTextOneCellPerRune(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 2)
	w, h := screen.Size()

	// "·" is multi-byte; each rune must still land in its own column.
	drawText(screen, w, h, 0, 0, "a·b·c", tcell.StyleDefault)
	screen.Show()

	for i, want := range []rune{'a', '·', 'b', '·', 'c'} {
		got, _, _, _ := screen.GetContent(i, 0)
		if got != want {
			t.Fatalf("column %d = %q, want %q", i, got, want)
		}
	}
}

func TestDrawTextClipsAtScreenEdge(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 1)
	w, h := screen.Size()

	drawText(screen, w, h, 2, 0, "abcdef", tcell.StyleDefault)
	screen.Show()

	got, _, _, _ := screen.GetContent(3, 0)
	if got != 'b' {
		t.Fatalf("last column = %q, want 'b'", got)
	}
}
