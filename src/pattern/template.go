package pattern

import (
	"sort"

	"lifeterm/src/life"
)

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string       //template name
	Descr string       //template descr
	Rule  string       //rule the pattern was designed for, empty for unknown
	Cells []life.Point //live cells
}

//Bounds returns the size of the smallest rectangle starting at 0,0 which contains all the cells
func (t Template) Bounds() (width int, height int) {
	for _, p := range t.Cells {
		if p.X+1 > width {
			width = p.X + 1
		}
		if p.Y+1 > height {
			height = p.Y + 1
		}
	}
	return
}

//Translate returns the copy of the template moved by dx, dy
func (t Template) Translate(dx int, dy int) Template {
	cells := make([]life.Point, len(t.Cells))
	for i, p := range t.Cells {
		cells[i] = life.Point{X: p.X + dx, Y: p.Y + dy}
	}
	t.Cells = cells
	return t
}

//Center returns the copy of the template moved to the middle of the field width x height
//the pattern larger than the field is aligned to the top left corner
func (t Template) Center(width int, height int) Template {
	w, h := t.Bounds()
	dx, dy := (width-w)/2, (height-h)/2
	if dx < 0 {
		dx = 0
	}
	if dy < 0 {
		dy = 0
	}
	return t.Translate(dx, dy)
}

var library = map[string]Template{}

func register(name string, descr string, rows ...string) {
	t, err := parsePlaintext(rows)
	if err != nil {
		panic(err)
	}
	t.Name = name
	t.Descr = descr
	t.Rule = "B3/S23"
	library[name] = t
}

//Library returns the built-in templates sorted by name
func Library() []Template {
	names := Names()
	l := make([]Template, 0, len(names))
	for _, n := range names {
		l = append(l, library[n])
	}
	return l
}

//Names returns the sorted names of the built-in templates
func Names() []string {
	names := make([]string, 0, len(library))
	for k := range library {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Lookup returns the built-in template by name
func Lookup(name string) (Template, bool) {
	t, ok := library[name]
	return t, ok
}

func init() {
	register("block", "still life, 2x2 square",
		"OO",
		"OO")
	register("blinker", "period 2 oscillator",
		"OOO")
	register("toad", "period 2 oscillator",
		".OOO",
		"OOO.")
	register("beacon", "period 2 oscillator",
		"OO..",
		"OO..",
		"..OO",
		"..OO")
	register("glider", "the smallest spaceship, moves diagonally",
		".O.",
		"..O",
		"OOO")
	register("lwss", "lightweight spaceship, moves horizontally",
		".O..O",
		"O....",
		"O...O",
		"OOOO.")
	register("rpentomino", "methuselah, stabilizes after 1103 generations",
		".OO",
		"OO.",
		".O.")
	register("gosper", "Gosper glider gun, emits a glider every 30 generations",
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................")
	register("sample", "the test sample with 3 stable patterns",
		"......",
		".OO...",
		".OO.O.",
		"...OOO")
}
