/*
Package table provides the immutable transition table of a Turing machine.

A Table is built once from parsed records. Building interns every state name in
declaration order (the first state declared is the initial state), rejects duplicate
(state, symbol) sources, and indexes instructions densely so that Lookup is a pair of
slice accesses. A Table is never mutated after New returns and may be shared by any
number of engines, including concurrently.

	records := []domain.Record{
	    {From: "A", Read: 0, To: "B", Write: 1, Move: domain.Right},
	    {From: "B", Read: 0, To: domain.HaltName, Write: 1, Move: domain.Left},
	}
	tbl, err := table.New(records)
*/
package table
