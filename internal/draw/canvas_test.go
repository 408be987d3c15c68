package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderWritesOnlyChangedCells(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer

	c.SetFloat(0, 0)
	c.Render(&out)
	first := out.String()
	if !strings.ContainsRune(first, BlockUpperHalf) {
		t.Fatalf("first render %q lacks the set pixel", first)
	}
	// The first frame paints every cell, including blanks.
	if got := strings.Count(first, " "); got != 7 {
		t.Fatalf("first render wrote %d blank cells, want 7", got)
	}

	out.Reset()
	c.Clear()
	c.SetFloat(0, 0)
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	out.Reset()
	c.Clear()
	c.SetFloat(0, 1)
	c.Render(&out)
	if got := out.String(); got != "\033[1;1H"+string(BlockLowerHalf) {
		t.Fatalf("changed cell render = %q", got)
	}
}

func TestMarkTextDirtyRewritesCells(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer
	c.Render(&out)

	out.Reset()
	c.MarkTextDirty(2, 2, 2)
	c.Render(&out)
	if got := out.String(); got != "\033[2;2H  " {
		t.Fatalf("dirty render = %q, want two blanks at 2;2", got)
	}
}

func TestForceRedrawAfterResize(t *testing.T) {
	c := NewScaledCanvas(4, 2, 8, 8)
	var out bytes.Buffer
	c.Render(&out)

	out.Reset()
	c.Resize(6, 3)
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 18 {
		t.Fatalf("render after resize wrote %d cells, want 18", got)
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(3, 2)

	x, y := c.TerminalToLogical(44, 18)
	col, row := c.LogicalToTerminal(x, y)
	if col+c.OffsetCol() != 44 || row+c.OffsetRow() != 18 {
		t.Fatalf("round trip = (%d,%d), want (44,18)", col+c.OffsetCol(), row+c.OffsetRow())
	}
}
