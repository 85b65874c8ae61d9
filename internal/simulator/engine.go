// Package simulator runs the per-process tick loop: derive the current tick
// from wall time, merge command overrides, advance the deterministic
// building physics and project the points owned by this equipment process.
package simulator

import (
	"sync"
	"time"

	"building_simulator/internal/clock"
	"building_simulator/internal/command"
	"building_simulator/internal/model"
	"building_simulator/internal/physics"
	"building_simulator/internal/points"
)

// State describes the engine for clients.
type State struct {
	Time       time.Time `json:"time"`
	Tick       int64     `json:"tick"`
	Equipment  string    `json:"equipment"`
	DeviceName string    `json:"device_name"`
	Running    bool      `json:"running"`
}

// Callback receives engine events.
type Callback interface {
	OnState(state State)
	OnPoints(pts []model.Point)
}

// Fanout broadcasts engine events to several callbacks.
type Fanout []Callback

func (f Fanout) OnState(s State) {
	for _, cb := range f {
		cb.OnState(s)
	}
}

func (f Fanout) OnPoints(pts []model.Point) {
	for _, cb := range f {
		cb.OnPoints(pts)
	}
}

// Config is the per-process configuration surface consumed by the engine.
type Config struct {
	Equipment  model.Equipment
	DeviceName string
	// Instance is used only for point-name composition, never for physics.
	Instance int
	Location *time.Location
}

// Engine owns one process's copy of the building state and its command
// table, and advances both on the shared 5-second tick grid.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	callback Callback

	building *physics.Building
	commands *command.Table
	lastTick clock.Tick
	running  bool
	stopCh   chan struct{}
}

func New(cfg Config, cb Callback) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Engine{
		cfg:      cfg,
		callback: cb,
		commands: command.NewTable(points.Definitions(cfg.Equipment, cfg.Instance)),
	}
}

// Init derives the building state at the tick containing now by replaying
// from the day anchor, so a process started mid-day agrees with processes
// started earlier.
func (e *Engine) Init(now time.Time) {
	tk := clock.At(now.In(e.cfg.Location))
	anchor := clock.DayAnchor(now, e.cfg.Location)

	e.mu.Lock()
	e.building = physics.Replay(anchor, tk)
	e.lastTick = tk
	e.mu.Unlock()

	e.broadcast()
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	return State{
		Time:       e.lastTick.Time,
		Tick:       e.lastTick.Index,
		Equipment:  e.cfg.Equipment.String(),
		DeviceName: e.cfg.DeviceName,
		Running:    e.running,
	}
}

// Points returns the current projection of this process's points.
func (e *Engine) Points() []model.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return points.Project(e.cfg.Equipment, e.cfg.Instance, &e.building.State)
}

// Building returns a copy of the full derived building state.
func (e *Engine) Building() model.Building {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.building.State
}

// Write records a command at the given priority. Validation failures are
// returned to the caller and leave the prior state untouched. An accepted
// write takes effect at the start of the next tick, never mid-tick.
func (e *Engine) Write(point string, value float64, priority int) error {
	return e.commands.Write(point, value, priority)
}

// Relinquish clears one priority slot of a commandable point.
func (e *Engine) Relinquish(point string, priority int) error {
	return e.commands.Relinquish(point, priority)
}

// PriorityArray returns a copy of a point's priority array.
func (e *Engine) PriorityArray(point string) (command.PriorityArray, error) {
	return e.commands.Array(point)
}

// Start begins the wall-clock tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	e.broadcast()
	go e.loop()
}

// Pause stops the tick loop. The loop may be resumed with Start; missed
// ticks are replayed on the next advance, so no torn state is observable.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	e.mu.Unlock()

	e.broadcast()
}

// pollInterval bounds how far past a tick boundary the engine can wake.
const pollInterval = time.Second

func (e *Engine) loop() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	e.mu.Lock()
	stop := e.stopCh
	e.mu.Unlock()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			e.advanceTo(clock.At(now.In(e.cfg.Location)))
		}
	}
}

// advanceTo replays every tick between the last processed tick and target.
// Each intermediate tick integrates with the nominal Δt, which clamps the
// effect of process suspension; a backward clock jump is a no-op until the
// wall clock passes the last processed tick again.
func (e *Engine) advanceTo(target clock.Tick) {
	e.mu.Lock()
	if target.Index <= e.lastTick.Index {
		e.mu.Unlock()
		return
	}
	for idx := e.lastTick.Index + 1; idx <= target.Index; idx++ {
		ov := points.OverridesFor(e.cfg.Equipment, e.cfg.Instance, e.commands.Snapshot())
		e.building.Step(clock.FromIndex(idx, e.cfg.Location), ov)
	}
	e.lastTick = target
	e.mu.Unlock()

	e.broadcast()
}

// Step advances the simulation by n ticks regardless of wall time. Useful
// for deterministic testing; does not require Start.
func (e *Engine) Step(n int) {
	e.mu.Lock()
	target := clock.FromIndex(e.lastTick.Index+int64(n), e.cfg.Location)
	e.mu.Unlock()
	e.advanceTo(target)
}

func (e *Engine) broadcast() {
	if e.callback == nil {
		return
	}
	e.mu.Lock()
	s := e.stateLocked()
	pts := points.Project(e.cfg.Equipment, e.cfg.Instance, &e.building.State)
	e.mu.Unlock()

	e.callback.OnState(s)
	e.callback.OnPoints(pts)
}
