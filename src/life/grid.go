package life

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

//Cell is the state of one position of the grid
type Cell bool

//Point is a pair of x,y coordinates
type Point struct {
	X int
	Y int
}

//Grid is a fixed size field of cells
//cells are stored in one slice in row-major order, the cell x,y lives at y*width+x
//Grid is not safe for concurrent use, the owner should serialize all calls
type Grid struct {
	width  int
	height int
	cells  []Cell
	rule   Rule
}

//New creates the grid and settles every cell with a random state taken from rnd
//nil rnd means a source seeded with the current time
func New(width int, height int, rnd *rand.Rand) *Grid {
	g := Empty(width, height)
	g.Randomize(rnd)
	return g
}

//Empty creates the grid with all cells dead
func Empty(width int, height int) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("life: negative grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		rule:   Conway,
	}
}

//NewWithSeed creates the random grid and then makes alive all the cells from live
//points outside the grid are ignored
func NewWithSeed(width int, height int, live []Point, rnd *rand.Rand) *Grid {
	g := New(width, height, rnd)
	g.Settle(live)
	return g
}

//NewSource returns the random source used by New when no source is given
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//Width returns the grid width
func (g *Grid) Width() int {
	return g.width
}

//Height returns the grid height
func (g *Grid) Height() int {
	return g.height
}

//Cell returns the state of the cell x,y
//it panics if the coordinates are outside the grid
func (g *Grid) Cell(x int, y int) bool {
	return bool(g.cells[g.index(x, y)])
}

//SetCell sets the state of the cell x,y
//it panics if the coordinates are outside the grid
func (g *Grid) SetCell(x int, y int, alive bool) {
	g.cells[g.index(x, y)] = Cell(alive)
}

//Toggle inverses the state of the cell x,y
func (g *Grid) Toggle(x int, y int) {
	i := g.index(x, y)
	g.cells[i] = !g.cells[i]
}

//Contains reports whether x,y is inside the grid
func (g *Grid) Contains(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

//Settle makes alive the cells at the given points, skipping the points outside the grid
func (g *Grid) Settle(live []Point) {
	for _, p := range live {
		if !g.Contains(p.X, p.Y) {
			continue
		}
		g.cells[p.Y*g.width+p.X] = true
	}
}

//Randomize settles every cell with a random state
func (g *Grid) Randomize(rnd *rand.Rand) {
	if rnd == nil {
		rnd = NewSource(time.Now().UnixNano())
	}
	for i := range g.cells {
		g.cells[i] = rnd.Uint64()&1 == 1
	}
}

//Clear kills all the cells
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

//Rule returns the active rule
func (g *Grid) Rule() Rule {
	return g.rule
}

//SetRule replaces the active rule, nil restores the Conway's rule
func (g *Grid) SetRule(r Rule) {
	if r == nil {
		r = Conway
	}
	g.rule = r
}

//LiveNeighbours counts the alive cells among the 8 cells around x,y
//the grid has hard edges: positions outside the grid are skipped
func (g *Grid) LiveNeighbours(x int, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			//skip my position
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			ny := y + dy
			if nx < 0 || ny < 0 || nx >= g.width || ny >= g.height {
				continue
			}
			if g.cells[ny*g.width+nx] {
				n++
			}
		}
	}
	return n
}

//Advance calculates the next generation
//every cell's next state is written to the new buffer while the rule reads the current one,
//the new buffer replaces the current one when all cells are done
func (g *Grid) Advance() (liveCells int, changed bool) {
	next := make([]Cell, len(g.cells))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			next[i] = Cell(g.rule.NextState(g, x, y))
			if next[i] {
				liveCells++
			}
			changed = changed || next[i] != g.cells[i]
		}
	}
	g.cells = next
	return
}

//LiveCells returns the count of alive cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

//Equal reports whether both grids have the same size and the same cells
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

//String renders the grid as lines of 'O' (alive) and '.' (dead)
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) index(x int, y int) int {
	if !g.Contains(x, y) {
		panic(fmt.Sprintf("life: cell %d,%d is outside the %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}
