package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifeterm/src/universe"
)

//the final field is printed only when it fits the usual terminal
const (
	maxPrintWidth  = 120
	maxPrintHeight = 60
)

//ConsoleOut is the Viewer for the non-interactive mode, it prints the progress to w
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	u         universe.Universe
	startTime time.Time
	lastMode  universe.RunningState
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors)}
}

func (c *ConsoleOut) Refresh(f universe.Field, st universe.Status) {
	mode := st.RunningMode
	if mode == universe.RunningStateStep {
		mode = c.lastMode
	}
	defer func() { c.lastMode = mode }()

	if st.RunningMode == universe.RunningStateFinished {
		if c.lastMode == universe.RunningStateFinished {
			return
		}
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, c.au.Bold("\nFinished:"))
		c.printHashData(resultData)
		if f.Width() <= maxPrintWidth && f.Height() <= maxPrintHeight {
			_, _ = fmt.Fprintln(c.w, RenderField(f, f.Width(), f.Height(), c.au.Green("O").String(), "."))
		}
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%10 == 0 && st.IterationNum != 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, c.au.Bold("Running configuration:"))
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	if o.MaxSteps != 0 {
		_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	} else {
		_, _ = fmt.Fprintln(c.w, "  Max iterations: unlimited")
	}
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	_, err := fmt.Fprintln(c.w, "\nSimulation started...")
	return err
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
