package transform

import (
	"slices"
	"strconv"
	"testing"

	"github.com/matzehuels/columnview/pkg/dag"
)

func TestFindCycle_NoCycles(t *testing.T) {
	idx := mustBuild(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})

	if cycle := FindCycle(idx); cycle != nil {
		t.Errorf("FindCycle() = %v, want nil", cycle)
	}
}

func TestFindCycle_SimpleCycle(t *testing.T) {
	idx := mustBuild(t, 2, [][2]int{{0, 1}, {1, 0}})

	cycle := FindCycle(idx)
	want := []int{0, 1, 0}
	if !slices.Equal(cycle, want) {
		t.Errorf("FindCycle() = %v, want %v", cycle, want)
	}
}

func TestFindCycle_TriangleBehindRoot(t *testing.T) {
	// root 0 feeds a 1 -> 2 -> 3 -> 1 loop
	idx := mustBuild(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 1}})

	cycle := FindCycle(idx)
	want := []int{1, 2, 3, 1}
	if !slices.Equal(cycle, want) {
		t.Errorf("FindCycle() = %v, want %v", cycle, want)
	}
}

func TestUnplaced(t *testing.T) {
	idx := mustBuild(t, 4, [][2]int{{0, 1}})

	got := Unplaced(idx, dag.Layering{{0, 2}, {1}})
	if !slices.Equal(got, []int{3}) {
		t.Errorf("Unplaced() = %v, want [3]", got)
	}
	if got := Unplaced(idx, dag.Layering{{0, 2, 3}, {1}}); got != nil {
		t.Errorf("Unplaced() = %v, want nil", got)
	}
}

// mustBuild builds an index over nodes 0..n-1 named n0, n1, ...
func mustBuild(t *testing.T, n int, edges [][2]int) *dag.Index {
	t.Helper()
	nodes := make([]dag.Node, n)
	for i := range nodes {
		nodes[i] = dag.Node{ID: i, Name: "n" + strconv.Itoa(i)}
	}
	es := make([]dag.Edge, len(edges))
	for i, e := range edges {
		es[i] = dag.Edge{From: e[0], To: e[1]}
	}
	idx, err := dag.Build(nodes, es)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return idx
}
