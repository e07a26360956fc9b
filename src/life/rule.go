package life

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//Rule calculates the next state of the cell x,y
//the grid passed to NextState is the current generation and must not be modified
type Rule interface {
	NextState(g *Grid, x int, y int) bool
}

//RuleFunc is an adapter to use ordinary functions as the Rule
type RuleFunc func(g *Grid, x int, y int) bool

//NextState calls f(g, x, y)
func (f RuleFunc) NextState(g *Grid, x int, y int) bool {
	return f(g, x, y)
}

//Conway is the classic rule B3/S23
var Conway Rule = conwayRule{}

type conwayRule struct{}

//NextState keeps alive the live cell with 2 or 3 live neighbours
//and makes alive the dead cell with exactly 3
func (conwayRule) NextState(g *Grid, x int, y int) bool {
	n := g.LiveNeighbours(x, y)
	if n == 3 {
		return true
	}
	return n == 2 && g.Cell(x, y)
}

//LifeLike is the outer totalistic rule in the B/S notation
//Born[n] - the dead cell with n live neighbours becomes alive
//Survive[n] - the live cell with n live neighbours stays alive
type LifeLike struct {
	Name    string
	Born    [9]bool
	Survive [9]bool
}

//NextState looks up the live neighbour count in Survive for the live cell and in Born for the dead one
func (r *LifeLike) NextState(g *Grid, x int, y int) bool {
	n := g.LiveNeighbours(x, y)
	if g.Cell(x, y) {
		return r.Survive[n]
	}
	return r.Born[n]
}

//String returns the rule in the B/S notation
func (r *LifeLike) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, ok := range r.Born {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, ok := range r.Survive {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

var namedRules = map[string]string{
	"conway":           "B3/S23",
	"highlife":         "B36/S23",
	"seeds":            "B2/S",
	"daynight":         "B3678/S34678",
	"lifewithoutdeath": "B3/S012345678",
	"maze":             "B3/S12345",
}

//RuleNames returns the sorted names known by Named
func RuleNames() []string {
	names := make([]string, 0, len(namedRules))
	for k := range namedRules {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Named returns the rule by its name or by its notation
//"conway" and the empty name return the Conway rule
func Named(name string) (Rule, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "conway" {
		return Conway, nil
	}
	if s, ok := namedRules[key]; ok {
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		r.Name = key
		return r, nil
	}
	r, err := ParseRule(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown rule %q", name)
	}
	return r, nil
}

//ParseRule parses the rule in B/S notation ("B36/S23", "s23/b3")
//or in the S/B notation without letters ("23/3")
func ParseRule(s string) (*LifeLike, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return nil, errors.Errorf("rule %q: expected two parts separated by '/'", s)
	}
	r := &LifeLike{}
	var born, survive string
	switch {
	case strings.HasPrefix(parts[0], "B") && strings.HasPrefix(parts[1], "S"):
		born, survive = parts[0][1:], parts[1][1:]
	case strings.HasPrefix(parts[0], "S") && strings.HasPrefix(parts[1], "B"):
		survive, born = parts[0][1:], parts[1][1:]
	default:
		survive, born = parts[0], parts[1]
	}
	if err := parseCounts(born, &r.Born); err != nil {
		return nil, errors.Wrapf(err, "rule %q", s)
	}
	if err := parseCounts(survive, &r.Survive); err != nil {
		return nil, errors.Wrapf(err, "rule %q", s)
	}
	r.Name = r.String()
	return r, nil
}

func parseCounts(s string, dst *[9]bool) error {
	for _, c := range s {
		if c < '0' || c > '8' {
			return errors.Errorf("invalid neighbour count %q", c)
		}
		if dst[c-'0'] {
			return errors.Errorf("duplicated neighbour count %q", c)
		}
		dst[c-'0'] = true
	}
	return nil
}

//RuleName returns the human readable name of the rule
func RuleName(r Rule) string {
	switch v := r.(type) {
	case *LifeLike:
		return v.Name
	case conwayRule, nil:
		return "conway"
	}
	return "custom"
}
