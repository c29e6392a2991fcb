/*
Package dsl provides a Go DSL for building instruction tables in code.

It is the typed alternative to writing a .turing file: every rule is declared
through a fluent builder, so generated machines, enumerations and tests do not
have to assemble table text by hand.

Example usage:

	b := dsl.New()

	b.State("A").
		On(0).Write(1).Right().Go("B").
		On(1).Write(1).Left().Go("B")

	b.State("B").
		On(0).Write(1).Left().Go("A").
		On(1).Write(1).Right().Halt()

	tbl, err := b.Table()
	// ... pass tbl to turing.New(tbl)

The first state declared is the initial state.
*/
package dsl
