package universe

import (
	"time"

	"lifeterm/src/life"
	"lifeterm/src/pattern"
)

//Universe is the simulation driver: it owns the grid and advances it on the fixed tick interval
type Universe interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	AddTemplate(tmpl pattern.Template)
	SettleTemplate(name string) error
	SettleWithRandomData()
	Settle(cells []life.Point)
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Inspect(fn func(f Field))
	Refresh()
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Field is the read only access to the cells
//it's valid only inside the call it was passed to
type Field interface {
	Width() int
	Height() int
	Cell(x int, y int) bool
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Register(u Universe)
	Refresh(f Field, s Status)
	Start() error
}

//Options represents the Universe's configurable options
type Options struct {
	Width    int
	Height   int
	Interval time.Duration
	MaxSteps int          //0 means no limit
	Rule     string       //rule name or B/S notation
	Seed     int64        //random seed, 0 means the current time
	Random   bool         //settle every cell with random state on start
	Live     []life.Point //cells alive on start
	Advanced map[string]interface{}
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Rule          string
}

//RunningState is the universe running status at the concrete moment
type RunningState int

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 250
	DefWidth              = 80
	DefHeight             = 24
)

var DefaultOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	Rule:     "conway",
}
