package turing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
)

// Machine is the high-level entry point for the library.
// It pairs a transition table with one engine running it.
type Machine struct {
	table  *table.Table
	engine *runtime.Engine
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	blank  domain.Symbol
	entry  string
	Name   string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers halt and fault hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithBlank sets the symbol used for fresh tape cells (default 0).
func WithBlank(s domain.Symbol) Option {
	return func(m *Machine) {
		m.blank = s
	}
}

// WithInitialState starts the machine in the named state instead of the first declared one.
func WithInitialState(name string) Option {
	return func(m *Machine) {
		m.entry = name
	}
}

// WithName labels the machine in logs and reports.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// Load reads and compiles a table file. The machine is named after the file.
func Load(path string, opts ...Option) (*Machine, error) {
	records, err := compiler.NewParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fromRecords(records, append([]Option{WithName(name)}, opts...)...)
}

// Compile parses table text from r.
func Compile(r io.Reader, name string, opts ...Option) (*Machine, error) {
	records, err := compiler.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}
	return fromRecords(records, append([]Option{WithName(name)}, opts...)...)
}

// FromLoader compiles the named table served by loader.
func FromLoader(loader ports.TableLoader, name string, opts ...Option) (*Machine, error) {
	data, err := loader.GetTable(name)
	if err != nil {
		return nil, err
	}
	return Compile(bytes.NewReader(data), name, opts...)
}

func fromRecords(records []domain.Record, opts ...Option) (*Machine, error) {
	tbl, err := table.New(records)
	if err != nil {
		return nil, err
	}
	return New(tbl, opts...)
}

// New creates a machine over an existing table. Tables may be shared.
func New(tbl *table.Table, opts ...Option) (*Machine, error) {
	if tbl == nil {
		return nil, fmt.Errorf("table is required")
	}
	m := &Machine{table: tbl}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset discards the engine and starts over on a blank tape.
func (m *Machine) Reset() error {
	opts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
		runtime.WithBlank(m.blank),
	}
	if m.entry != "" {
		opts = append(opts, runtime.WithInitialState(m.entry))
	}

	eng, err := runtime.NewEngine(m.table, opts...)
	if err != nil {
		return err
	}
	m.engine = eng
	return nil
}

// Step executes one instruction. See runtime.Engine.Step.
func (m *Machine) Step() (bool, error) {
	return m.engine.Step()
}

// Run drives the machine until it stops.
// Options are applied after the machine's name and logger.
func (m *Machine) Run(ctx context.Context, opts ...runner.Option) (*domain.Report, error) {
	base := []runner.Option{
		runner.WithName(m.Name),
		runner.WithLogger(m.logger),
	}
	return runner.New(append(base, opts...)...).Run(ctx, m.engine)
}

// Snapshot copies the observable state.
func (m *Machine) Snapshot() domain.Snapshot {
	return m.engine.Snapshot()
}

// Pending returns the instruction the next step would take, if any.
func (m *Machine) Pending() (domain.Instruction, bool) {
	return m.engine.Pending()
}

// Table returns the compiled transition table.
func (m *Machine) Table() *table.Table {
	return m.table
}

// Engine returns the underlying engine.
func (m *Machine) Engine() *runtime.Engine {
	return m.engine
}
