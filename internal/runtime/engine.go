package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Engine executes a transition table over a tape, one step at a time.
// It is not safe for concurrent use; the table it reads may be shared.
type Engine struct {
	table  *table.Table
	tape   *Tape
	state  domain.StateID
	status domain.Status
	steps  uint64
	fault  error

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	blank  domain.Symbol
	entry  string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers halt and fault callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBlank sets the default symbol of unvisited cells (default 0).
func WithBlank(s domain.Symbol) EngineOption {
	return func(e *Engine) {
		e.blank = s
	}
}

// WithInitialState starts the machine in the named state instead of the
// first declared one.
func WithInitialState(name string) EngineOption {
	return func(e *Engine) {
		e.entry = name
	}
}

// NewEngine creates an engine in the initial state over a one-cell blank tape.
func NewEngine(tbl *table.Table, opts ...EngineOption) (*Engine, error) {
	if tbl == nil {
		return nil, fmt.Errorf("engine requires a transition table")
	}

	e := &Engine{
		table:  tbl,
		status: domain.StatusRunning,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		blank:  domain.Blank,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.state = tbl.Initial()
	if e.entry != "" {
		id, err := tbl.StateID(e.entry)
		if err != nil {
			return nil, fmt.Errorf("invalid initial state: %w", err)
		}
		e.state = id
	}
	e.tape = NewTape(e.blank)

	return e, nil
}

// Step executes one instruction.
//
// It returns true when an instruction was taken, including the one that halts
// the machine. Once halted it returns (false, nil) forever. When no
// instruction matches, the engine becomes faulted and returns (false, err)
// with a *domain.UndefinedTransitionError; every later call returns the same
// error. Terminal engines are never mutated.
func (e *Engine) Step() (bool, error) {
	switch e.status {
	case domain.StatusHalted:
		return false, nil
	case domain.StatusFaulted:
		return false, e.fault
	}

	sym := e.tape.Read()
	inst, ok := e.table.Lookup(e.state, sym)
	if !ok {
		e.setFault(sym)
		return false, e.fault
	}
	if e.steps == math.MaxUint64 {
		return false, domain.ErrStepOverflow
	}

	e.tape.Write(inst.Write)
	e.state = inst.To
	if inst.Move == domain.Left {
		e.tape.MoveLeft()
	} else {
		e.tape.MoveRight()
	}
	e.steps++

	if inst.To.Halted() {
		e.status = domain.StatusHalted
		e.emitHalt(inst)
	}
	return true, nil
}

func (e *Engine) setFault(sym domain.Symbol) {
	err := &domain.UndefinedTransitionError{
		State: e.table.StateName(e.state),
		Read:  sym,
		Head:  e.tape.Head(),
		Steps: e.steps,
	}
	e.status = domain.StatusFaulted
	e.fault = err

	e.logger.Debug("machine faulted", "state", err.State, "read", sym, "steps", e.steps, "err", err)
	if e.hooks.OnFault != nil {
		e.hooks.OnFault(&domain.MachineEvent{
			Timestamp: time.Now(),
			Type:      domain.EventFault,
			State:     err.State,
			Read:      sym,
			Steps:     e.steps,
			Err:       err,
		})
	}
}

func (e *Engine) emitHalt(inst domain.Instruction) {
	name := e.table.StateName(inst.From)
	e.logger.Debug("machine halted", "state", name, "read", inst.Read, "steps", e.steps)
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(&domain.MachineEvent{
			Timestamp: time.Now(),
			Type:      domain.EventHalt,
			State:     name,
			Read:      inst.Read,
			Steps:     e.steps,
		})
	}
}

// Table returns the transition table the engine reads.
func (e *Engine) Table() *table.Table {
	return e.table
}

// State returns the current control state, domain.Halt once halted.
func (e *Engine) State() domain.StateID {
	return e.state
}

// StateName returns the display name of the current state.
func (e *Engine) StateName() string {
	return e.table.StateName(e.state)
}

// Status returns the lifecycle status.
func (e *Engine) Status() domain.Status {
	return e.status
}

// Halted reports whether a Halt transition was taken.
func (e *Engine) Halted() bool {
	return e.status == domain.StatusHalted
}

// Fault returns the undefined transition error of a faulted engine.
func (e *Engine) Fault() error {
	return e.fault
}

// Steps returns the number of instructions taken.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// Tape returns a copy of the tape contents.
func (e *Engine) Tape() domain.Cells {
	return e.tape.Cells()
}

// TapeLen returns the number of materialized cells.
func (e *Engine) TapeLen() int {
	return e.tape.Len()
}

// Head returns the head position as an index into Tape.
func (e *Engine) Head() int {
	return e.tape.Head()
}

// Offset returns the number of cells prepended on the left.
func (e *Engine) Offset() int {
	return e.tape.Offset()
}

// Read returns the symbol under the head.
func (e *Engine) Read() domain.Symbol {
	return e.tape.Read()
}

// Count returns the number of cells holding s.
func (e *Engine) Count(s domain.Symbol) uint64 {
	return e.tape.Count(s)
}

// Tally returns the busy-beaver ones/zeros count.
func (e *Engine) Tally() domain.Tally {
	var t domain.Tally
	for i := 0; i < e.tape.Len(); i++ {
		switch e.tape.At(i) {
		case 1:
			t.Ones++
		case 0:
			t.Zeros++
		}
	}
	return t
}

// Pending returns the instruction the next Step would take, if any.
func (e *Engine) Pending() (domain.Instruction, bool) {
	if e.status != domain.StatusRunning {
		return domain.Instruction{}, false
	}
	return e.table.Lookup(e.state, e.tape.Read())
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		State:  e.StateName(),
		Status: e.status,
		Steps:  e.steps,
		Tape:   e.tape.Cells(),
		Head:   e.tape.Head(),
		Offset: e.tape.Offset(),
	}
}
