package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearClosedPath(t *testing.T) {
	pts := []Point{{X: 0, Y: -10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	want := []PathSegment{
		{Op: OpMove, Points: []Point{{X: 0, Y: -10}}},
		{Op: OpLine, Points: []Point{{X: 10, Y: 0}}},
		{Op: OpLine, Points: []Point{{X: 0, Y: 10}}},
		{Op: OpClose},
	}
	if diff := cmp.Diff(want, CurveLinearClosed.ClosedPath(pts)); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestCardinalClosedPath(t *testing.T) {
	square := []Point{{X: 0, Y: -6}, {X: 6, Y: 0}, {X: 0, Y: 6}, {X: -6, Y: 0}}
	got := CurveCardinalClosed.ClosedPath(square)

	if len(got) != len(square)+2 {
		t.Fatalf("got %d segments, want %d", len(got), len(square)+2)
	}
	// first edge: control points sit 1/6 of the neighbour chords away
	want := PathSegment{Op: OpCubic, Points: []Point{{X: 2, Y: -6}, {X: 6, Y: -2}, {X: 6, Y: 0}}}
	if diff := cmp.Diff(want, got[1], approx); diff != "" {
		t.Errorf("first cubic mismatch (-want +got):\n%s", diff)
	}
	// every vertex is passed through
	for i, seg := range got[1 : len(got)-1] {
		end := seg.Points[2]
		if diff := cmp.Diff(square[(i+1)%len(square)], end, approx); diff != "" {
			t.Errorf("cubic %d end mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestClosedPathDegenerate(t *testing.T) {
	if got := CurveCardinalClosed.ClosedPath(nil); got != nil {
		t.Errorf("nil points gave %v", got)
	}
	two := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	if diff := cmp.Diff(CurveLinearClosed.ClosedPath(two), CurveCardinalClosed.ClosedPath(two)); diff != "" {
		t.Errorf("cardinal with two points should fall back to linear (-want +got):\n%s", diff)
	}
}

func TestWrapLabel(t *testing.T) {
	m := runeMeasurer(6)
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "Speed", 60, []string{"Speed"}},
		{"two lines", "Hand-Eye Coordination", 60, []string{"Hand-Eye", "Coordination"}},
		{"greedy", "Analytical Aptitude of a team", 120, []string{"Analytical Aptitude", "of a team"}},
		{"disabled", "Analytical  Aptitude", 0, []string{"Analytical Aptitude"}},
		{"blank", "   ", 60, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, WrapLabel(tt.text, tt.width, m)); diff != "" {
				t.Errorf("WrapLabel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultMeasurer(t *testing.T) {
	m := DefaultMeasurer()
	short, long := m.Width("Nerve"), m.Width("Hand-Eye Coordination")
	if short <= 0 || long <= short {
		t.Errorf("widths: %q=%v, %q=%v", "Nerve", short, "Hand-Eye Coordination", long)
	}
}
