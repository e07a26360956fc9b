package pattern

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"lifeterm/src/life"
)

//Load reads the pattern file, the format is detected by the content
func Load(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, errors.Wrapf(err, "[Load] failed to open pattern file: %v", path)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := Parse(f, name)
	if err != nil {
		return Template{}, errors.Wrapf(err, "[Load] failed to parse pattern file: %v", path)
	}
	return t, nil
}

//Parse reads the pattern in the plaintext (.cells) or RLE format
//the name is used when the pattern does not name itself
func Parse(r io.Reader, name string) (Template, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return Template{}, errors.Wrap(err, "read pattern")
	}

	var (
		t   Template
		err error
	)
	if isRLE(lines) {
		t, err = parseRLE(lines)
	} else {
		t, err = parsePlaintext(lines)
	}
	if err != nil {
		return Template{}, err
	}
	if t.Name == "" {
		t.Name = name
	}
	return t, nil
}

//isRLE reports whether the first line which is not a comment is the RLE header
func isRLE(lines []string) bool {
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		return strings.HasPrefix(strings.ReplaceAll(l, " ", ""), "x=")
	}
	return false
}

//parsePlaintext parses the plaintext format:
//'!' starts the comment line, 'O' or '*' is alive cell, any other char is dead cell
func parsePlaintext(lines []string) (Template, error) {
	var t Template
	y := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "!") {
			c := strings.TrimSpace(l[1:])
			switch {
			case strings.HasPrefix(c, "Name:"):
				t.Name = strings.TrimSpace(c[len("Name:"):])
			case t.Descr == "" && c != "":
				t.Descr = c
			}
			continue
		}
		for x, c := range l {
			switch c {
			case 'O', '*':
				t.Cells = append(t.Cells, life.Point{X: x, Y: y})
			case '.', ' ':
			default:
				return Template{}, errors.Errorf("plaintext: unexpected char %q at line %d", c, y+1)
			}
		}
		y++
	}
	return t, nil
}

//parseRLE parses the run length encoded pattern:
//"#N name", "#C comment" lines, the "x = m, y = n, rule = B3/S23" header
//and the body of <count><tag> items, where tag is 'b' (dead), 'o' (alive) or '$' (end of line), '!' ends the pattern
func parseRLE(lines []string) (Template, error) {
	var (
		t      Template
		width  = -1
		height = -1
		body   strings.Builder
	)
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "#"):
			if len(trimmed) < 2 {
				continue
			}
			text := strings.TrimSpace(trimmed[2:])
			switch trimmed[1] {
			case 'N':
				t.Name = text
			case 'C', 'c':
				if t.Descr == "" {
					t.Descr = text
				}
			}
		case width < 0:
			var err error
			width, height, t.Rule, err = parseRLEHeader(trimmed)
			if err != nil {
				return Template{}, err
			}
		default:
			body.WriteString(trimmed)
		}
	}
	if width < 0 {
		return Template{}, errors.New("rle: missing header")
	}

	x, y, count := 0, 0, 0
	for _, c := range body.String() {
		switch {
		case unicode.IsDigit(c):
			count = count*10 + int(c-'0')
			//no run is longer than the declared size
			if count > width && count > height {
				return Template{}, errors.Errorf("rle: run count exceeds the declared size %dx%d", width, height)
			}
			continue
		case unicode.IsSpace(c):
			continue
		}
		n := count
		if n == 0 {
			n = 1
		}
		count = 0
		switch c {
		case 'b', '.':
			x += n
		case '$':
			x = 0
			y += n
		case '!':
			return t, checkRLEBounds(t, width, height)
		default:
			//every other letter is a live state in multi-state rules
			if !unicode.IsLetter(c) {
				return Template{}, errors.Errorf("rle: unexpected char %q", c)
			}
			if x+n > width || y >= height {
				return Template{}, errors.Errorf("rle: cells at %d,%d exceed the declared size %dx%d", x+n-1, y, width, height)
			}
			for i := 0; i < n; i++ {
				t.Cells = append(t.Cells, life.Point{X: x + i, Y: y})
			}
			x += n
		}
	}
	return t, checkRLEBounds(t, width, height)
}

func parseRLEHeader(l string) (width int, height int, rule string, err error) {
	width, height = -1, -1
	for _, item := range strings.Split(l, ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) != 2 {
			return 0, 0, "", errors.Errorf("rle: malformed header item %q", item)
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch key {
		case "x":
			width, err = strconv.Atoi(value)
		case "y":
			height, err = strconv.Atoi(value)
		case "rule":
			rule = value
		}
		if err != nil {
			return 0, 0, "", errors.Wrapf(err, "rle: header %q", key)
		}
	}
	if width < 0 || height < 0 {
		return 0, 0, "", errors.Errorf("rle: header %q must define x and y", l)
	}
	return width, height, rule, nil
}

func checkRLEBounds(t Template, width int, height int) error {
	w, h := t.Bounds()
	if w > width || h > height {
		return errors.Errorf("rle: pattern %dx%d exceeds the declared size %dx%d", w, h, width, height)
	}
	return nil
}
