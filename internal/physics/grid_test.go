package physics

import (
	"slices"
	"testing"
)

func TestGridCandidatesFindsNeighbors(t *testing.T) {
	g := NewGrid(0, 0, 100, 100, 10)
	g.Insert(55, 55, 2)
	g.Insert(45, 45, 0)
	g.Insert(95, 5, 1)

	got := g.Candidates(50, 50, nil)
	if !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("Candidates = %v, want [0 2]", got)
	}
}

func TestGridCandidatesAreSorted(t *testing.T) {
	g := NewGrid(0, 0, 100, 100, 10)
	g.Insert(51, 51, 7)
	g.Insert(41, 41, 3)
	g.Insert(59, 41, 5)
	g.Insert(41, 59, 1)

	got := g.Candidates(50, 50, make([]int, 0, 8))
	if !slices.IsSorted(got) {
		t.Fatalf("Candidates not sorted: %v", got)
	}
	if len(got) != 4 {
		t.Fatalf("Candidates = %v, want 4 entries", got)
	}
}

func TestGridClampsOutsidePositions(t *testing.T) {
	g := NewGrid(0, 0, 100, 100, 10)
	// Just outside the left edge, within one cell of a point inside.
	g.Insert(-8, 50, 4)

	got := g.Candidates(1, 50, nil)
	if !slices.Contains(got, 4) {
		t.Fatalf("clamped item missing from neighborhood: %v", got)
	}
}

func TestGridClear(t *testing.T) {
	g := NewGrid(-50, -50, 50, 50, 20)
	g.Insert(0, 0, 9)
	g.Clear()

	if got := g.Candidates(0, 0, nil); len(got) != 0 {
		t.Fatalf("Candidates after Clear = %v, want empty", got)
	}
}
