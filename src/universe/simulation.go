package universe

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"

	"lifeterm/src/life"
	"lifeterm/src/pattern"
)

//ErrUnknownTemplate is returned by SettleTemplate for the template which was not added
var ErrUnknownTemplate = errors.New("unknown template")

//Simulation implements Universe
//all the commands are executed one by one by the main loop goroutine,
//the grid is touched by this goroutine only
type Simulation struct {
	options Options
	grid    *life.Grid
	rnd     *rand.Rand
	state   struct {
		Status
		sync.Mutex
	}
	templates struct {
		m map[string]pattern.Template
		sync.RWMutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	runID     int
}

//New creates the Simulation and starts its main loop
//stateCh receives the status on every change, it can be nil
func New(o *Options, stateCh chan Status) (*Simulation, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if o.Width < 0 || o.Height < 0 {
		return nil, errors.Errorf("field size %dx%d must not be negative", o.Width, o.Height)
	}
	rule, err := life.Named(o.Rule)
	if err != nil {
		return nil, err
	}

	u := Simulation{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
	}
	u.options.Advanced = map[string]interface{}{"rule": life.RuleName(rule)}
	for k, v := range o.Advanced {
		u.options.Advanced[k] = v
	}
	u.templates.m = map[string]pattern.Template{}

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u.rnd = life.NewSource(seed)
	if o.Random {
		u.grid = life.NewWithSeed(o.Width, o.Height, o.Live, u.rnd)
	} else {
		u.grid = life.Empty(o.Width, o.Height)
		u.grid.Settle(o.Live)
	}
	u.grid.SetRule(rule)
	u.state.Rule = life.RuleName(rule)
	u.state.LiveCells = u.grid.LiveCells()

	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *Simulation) AddTemplate(tmpl pattern.Template) {
	u.templates.Lock()
	u.templates.m[tmpl.Name] = tmpl
	u.templates.Unlock()
}

//SettleTemplate populates the middle of the universe with the seeding template, returns immediately
func (u *Simulation) SettleTemplate(name string) error {
	u.templates.RLock()
	tmpl, ok := u.templates.m[name]
	u.templates.RUnlock()
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	u.Settle(tmpl.Center(u.options.Width, u.options.Height).Cells)
	return nil
}

//Settle makes alive the cells at the given points, returns immediately
//points outside the field are skipped
func (u *Simulation) Settle(cells []life.Point) {
	u.send(func() {
		u.grid.Settle(cells)
		u.cellsChanged()
	})
}

//SettleWithRandomData populates the universe with random data, returns immediately
//the running universe is not affected
func (u *Simulation) SettleWithRandomData() {
	u.send(func() {
		if u.mode() == RunningStateRun {
			return
		}
		u.grid.Randomize(u.rnd)
		u.state.Lock()
		u.state.IterationNum = 0
		u.state.Unlock()
		u.cellsChanged()
	})
}

//InverseCell inverses the cell state at point x, y, returns immediately
func (u *Simulation) InverseCell(x int, y int) {
	u.send(func() {
		if !u.grid.Contains(x, y) {
			return
		}
		u.grid.Toggle(x, y)
		u.cellsChanged()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *Simulation) RegisterViewer(v Viewer) {
	v.Register(u)
	u.exec(func() {
		u.views = append(u.views, v)
	})
}

//Inspect calls fn with the current field and waits for its return
//fn runs on the main loop, so it must not call the universe commands
func (u *Simulation) Inspect(fn func(f Field)) {
	u.exec(func() {
		fn(u.grid)
	})
}

//Refresh asks all the viewers to redraw, returns immediately
func (u *Simulation) Refresh() {
	u.send(u.refreshView)
}

//StateCh returns the channel with the universe's status updates
func (u *Simulation) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *Simulation) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *Simulation) Options() Options {
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *Simulation) Run() {
	u.send(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *Simulation) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *Simulation) Step() {
	u.send(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *Simulation) Clear() {
	u.send(u.clear)
}

//Close stops the main loop and the running simulation, returns immediately
//the commands sent after Close are discarded
func (u *Simulation) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *Simulation) mainLoop() {
	for {
		//Close wins over the queued commands
		select {
		case <-u.closeCh:
			return
		default:
		}
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//send queues the command for the main loop
func (u *Simulation) send(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//exec queues the command and waits until it is done
//returns false if the universe was closed before
func (u *Simulation) exec(cmd func()) bool {
	done := make(chan struct{})
	u.send(func() {
		cmd()
		close(done)
	})
	select {
	case <-done:
		return true
	case <-u.closeCh:
		return false
	}
}

func (u *Simulation) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *Simulation) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	u.publish(st)
}

func (u *Simulation) publish(st Status) {
	if u.stateCh == nil {
		return
	}
	select {
	case u.stateCh <- st:
	case <-u.closeCh:
	}
}

//cellsChanged recounts live cells after the manual change, publishes the status and redraws the views
func (u *Simulation) cellsChanged() {
	u.state.Lock()
	u.state.LiveCells = u.grid.LiveCells()
	st := u.state.Status
	u.state.Unlock()
	u.publish(st)
	u.refreshView()
}

//run starts the ticker which does one step per Interval
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *Simulation) run() {
	if u.mode() == RunningStateRun {
		return
	}
	u.runID++
	id := u.runID
	u.switchRunningState(RunningStateRun)
	go func() {
		var tick <-chan time.Time
		if u.options.Interval > 0 {
			t := time.NewTicker(u.options.Interval)
			defer t.Stop()
			tick = t.C
		}
		for {
			if tick != nil {
				select {
				case <-tick:
				case <-u.closeCh:
					return
				}
			}
			running := false
			if !u.exec(func() { running = u.tick(id) }) || !running {
				return
			}
		}
	}()
}

//tick does the step of the run started with the given id
//returns false when this run is over
func (u *Simulation) tick(id int) bool {
	if id != u.runID || u.mode() != RunningStateRun {
		return false
	}
	u.step()
	return u.mode() == RunningStateRun
}

//stop stops the universe running cycle
func (u *Simulation) stop() {
	if u.mode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//the universe is finished when all cells are dead, when nothing changed or when MaxSteps is reached
func (u *Simulation) step() {
	rm := u.mode()
	if rm != RunningStateRun {
		rm = RunningStateManual
	}
	maxIter := u.options.MaxSteps

	if maxIter != 0 && u.Status().IterationNum >= maxIter {
		u.finish()
		return
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	liveCells, changed := u.grid.Advance()
	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = liveCells
	u.state.IterationTime = time.Since(start)
	iter := u.state.IterationNum
	u.state.Unlock()

	if liveCells == 0 || !changed || (maxIter != 0 && iter >= maxIter) {
		u.finish()
	} else {
		u.switchRunningState(rm)
		u.refreshView()
	}
}

//finish switches the universe to RunningStateFinished
//the views are refreshed before the status is written to the stateCh,
//so the reader of the stateCh sees the final frame already drawn
func (u *Simulation) finish() {
	u.state.Lock()
	u.state.RunningMode = RunningStateFinished
	st := u.state.Status
	u.state.Unlock()
	u.refreshView()
	u.publish(st)
}

//clear clears the unvierse data, reset all counters
func (u *Simulation) clear() {
	u.runID++
	u.grid.Clear()
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *Simulation) refreshView() {
	st := u.Status()
	for _, v := range u.views {
		v.Refresh(u.grid, st)
	}
}
