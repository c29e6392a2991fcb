package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder declares the rules of one state.
type StateBuilder struct {
	name    string
	builder *Builder
}

// On starts the rule for reading sym. The rule writes sym back and moves
// right unless told otherwise.
func (s *StateBuilder) On(sym domain.Symbol) *RuleBuilder {
	return &RuleBuilder{
		state: s,
		record: domain.Record{
			From:  s.name,
			Read:  sym,
			Write: sym,
			Move:  domain.Right,
		},
	}
}

// RuleBuilder provides a fluent API for configuring a single instruction.
type RuleBuilder struct {
	state  *StateBuilder
	record domain.Record
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(sym domain.Symbol) *RuleBuilder {
	r.record.Write = sym
	return r
}

// Move sets the head movement.
func (r *RuleBuilder) Move(d domain.Direction) *RuleBuilder {
	r.record.Move = d
	return r
}

// Left moves the head left after writing.
func (r *RuleBuilder) Left() *RuleBuilder {
	return r.Move(domain.Left)
}

// Right moves the head right after writing.
func (r *RuleBuilder) Right() *RuleBuilder {
	return r.Move(domain.Right)
}

// Go finishes the rule with a transition to target and returns to the state
// so further symbols can be declared.
func (r *RuleBuilder) Go(target string) *StateBuilder {
	r.record.To = target
	b := r.state.builder
	b.records = append(b.records, r.record)
	return r.state
}

// Halt finishes the rule with a transition to Halt.
func (r *RuleBuilder) Halt() *StateBuilder {
	return r.Go(domain.HaltName)
}
