package life

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"strings"
	"testing"
)

//constSource always returns the same value, 0 gives the dead grid and 1 the live one
type constSource uint64

func (s constSource) Uint64() uint64 { return uint64(s) }

func dead() *rand.Rand { return rand.New(constSource(0)) }

func liveSet(g *Grid) []Point {
	var pts []Point
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Cell(x, y) {
				pts = append(pts, Point{x, y})
			}
		}
	}
	return pts
}

func sortPoints(pts []Point) []Point {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

func TestNewUsesInjectedSource(t *testing.T) {
	if n := New(4, 3, dead()).LiveCells(); n != 0 {
		t.Fatalf("dead source: got %d live cells", n)
	}
	if n := New(4, 3, rand.New(constSource(1))).LiveCells(); n != 12 {
		t.Fatalf("live source: got %d live cells, want 12", n)
	}
	a := New(20, 20, NewSource(42))
	b := New(20, 20, NewSource(42))
	if !a.Equal(b) {
		t.Fatal("grids built from the same seed differ")
	}
}

func TestZeroSizedGrid(t *testing.T) {
	for _, sz := range [][2]int{{0, 0}, {0, 5}, {5, 0}} {
		g := New(sz[0], sz[1], nil)
		if g.LiveCells() != 0 {
			t.Fatalf("%v: expected no cells", sz)
		}
		live, changed := g.Advance()
		if live != 0 || changed {
			t.Fatalf("%v: advance should be a no-op, got %d %v", sz, live, changed)
		}
		if g.Width() != sz[0] || g.Height() != sz[1] {
			t.Fatalf("%v: size changed to %dx%d", sz, g.Width(), g.Height())
		}
	}
}

func TestNewWithSeedIgnoresOutOfBounds(t *testing.T) {
	g := NewWithSeed(5, 5, []Point{{10, 10}, {2, 2}, {-1, 0}, {5, 0}}, dead())
	got := liveSet(g)
	want := []Point{{2, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOutOfBoundsAccessPanics(t *testing.T) {
	g := New(3, 2, dead())
	cases := []Point{{3, 0}, {0, 2}, {-1, 0}, {0, -1}, {5, 5}}
	for _, p := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Cell(%d,%d) did not panic", p.X, p.Y)
				}
			}()
			g.Cell(p.X, p.Y)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SetCell(%d,%d) did not panic", p.X, p.Y)
				}
			}()
			g.SetCell(p.X, p.Y, true)
		}()
	}
}

func TestNegativeSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(-1, 3, nil)
}

func TestIsolatedCellDies(t *testing.T) {
	g := NewWithSeed(3, 3, []Point{{1, 1}}, dead())
	if n := g.LiveNeighbours(1, 1); n != 0 {
		t.Fatalf("neighbours = %d, want 0", n)
	}
	g.Advance()
	if g.Cell(1, 1) {
		t.Fatal("isolated cell survived")
	}
}

func TestCornerNeighbourhood(t *testing.T) {
	g := New(4, 4, rand.New(constSource(1)))
	if n := g.LiveNeighbours(0, 0); n != 3 {
		t.Fatalf("corner of a full grid: %d neighbours, want 3", n)
	}
	if n := g.LiveNeighbours(3, 3); n != 3 {
		t.Fatalf("opposite corner: %d neighbours, want 3", n)
	}
	if n := g.LiveNeighbours(1, 0); n != 5 {
		t.Fatalf("edge cell: %d neighbours, want 5", n)
	}
	if n := g.LiveNeighbours(1, 1); n != 8 {
		t.Fatalf("inner cell: %d neighbours, want 8", n)
	}

	//no wraparound: cells on the opposite edges are never counted
	g = NewWithSeed(4, 4, []Point{{3, 0}, {0, 3}, {3, 3}}, dead())
	if n := g.LiveNeighbours(0, 0); n != 0 {
		t.Fatalf("wrapped to the opposite edge: %d neighbours", n)
	}
}

func TestBlockIsStable(t *testing.T) {
	block := []Point{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	g := NewWithSeed(6, 6, block, dead())
	live, changed := g.Advance()
	if changed || live != 4 {
		t.Fatalf("advance returned live=%d changed=%v", live, changed)
	}
	if got := liveSet(g); !reflect.DeepEqual(got, sortPoints(append([]Point(nil), block...))) {
		t.Fatalf("block changed to %v", got)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	vertical := []Point{{2, 1}, {2, 2}, {2, 3}}
	horizontal := []Point{{1, 2}, {2, 2}, {3, 2}}
	g := NewWithSeed(5, 5, vertical, dead())

	g.Advance()
	if got := liveSet(g); !reflect.DeepEqual(got, horizontal) {
		t.Fatalf("generation 1: got %v, want %v", got, horizontal)
	}
	g.Advance()
	if got := liveSet(g); !reflect.DeepEqual(got, vertical) {
		t.Fatalf("generation 2: got %v, want %v", got, vertical)
	}
}

func TestBlinkerAtEdge(t *testing.T) {
	//the blinker touches both edges of the 3x3 grid
	g := NewWithSeed(3, 3, []Point{{1, 0}, {1, 1}, {1, 2}}, dead())
	g.Advance()
	want := []Point{{0, 1}, {1, 1}, {2, 1}}
	if got := liveSet(g); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGliderMoves(t *testing.T) {
	glider := []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	g := NewWithSeed(10, 10, glider, dead())
	for i := 0; i < 4; i++ {
		g.Advance()
	}
	want := make([]Point, 0, len(glider))
	for _, p := range glider {
		want = append(want, Point{p.X + 1, p.Y + 1})
	}
	if got := liveSet(g); !reflect.DeepEqual(got, sortPoints(want)) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	g := New(7, 5, NewSource(3))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Cell(x, y) != g.Cell(x, y) {
				t.Fatalf("Cell(%d,%d) changed between reads", x, y)
			}
		}
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a := New(30, 20, NewSource(7))
	b := New(30, 20, dead())
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			b.SetCell(x, y, a.Cell(x, y))
		}
	}
	for i := 0; i < 10; i++ {
		a.Advance()
		b.Advance()
		if !a.Equal(b) {
			t.Fatalf("grids diverged at generation %d", i+1)
		}
	}
}

func TestAdvanceReadsCurrentGeneration(t *testing.T) {
	//the rule records every cell it sees; with an in-place update the second
	//visit of a cell would see the value written on the first pass
	g := NewWithSeed(3, 3, []Point{{0, 0}}, dead())
	seen := 0
	g.SetRule(RuleFunc(func(s *Grid, x int, y int) bool {
		if s.Cell(0, 0) {
			seen++
		}
		return !s.Cell(x, y)
	}))
	g.Advance()
	if seen != 9 {
		t.Fatalf("the rule saw the original cell %d times, want 9", seen)
	}
	if g.Cell(0, 0) || g.LiveCells() != 8 {
		t.Fatalf("unexpected generation:\n%s", g)
	}
}

func TestSetRuleNilRestoresConway(t *testing.T) {
	g := New(1, 1, dead())
	g.SetRule(RuleFunc(func(*Grid, int, int) bool { return true }))
	g.SetRule(nil)
	if RuleName(g.Rule()) != "conway" {
		t.Fatalf("rule = %s", RuleName(g.Rule()))
	}
}

func TestToggleClearString(t *testing.T) {
	g := New(3, 2, dead())
	g.Toggle(1, 0)
	g.Toggle(2, 1)
	if s := g.String(); s != ".O.\n..O\n" {
		t.Fatalf("got %q", s)
	}
	g.Toggle(1, 0)
	if g.Cell(1, 0) || g.LiveCells() != 1 {
		t.Fatal("toggle did not revert the cell")
	}
	g.Clear()
	if strings.Contains(g.String(), "O") {
		t.Fatal("clear left live cells")
	}
}

func TestEmpty(t *testing.T) {
	g := Empty(6, 4)
	if g.LiveCells() != 0 || g.Width() != 6 || g.Height() != 4 {
		t.Fatalf("unexpected grid %dx%d with %d live cells", g.Width(), g.Height(), g.LiveCells())
	}
}
