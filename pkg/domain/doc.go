/*
Package domain contains the core value types of the turing engine.

It defines the vocabulary shared by the transition table, the execution engine and
every adapter: symbols, head directions, interned control states, instructions and
the read-only snapshots handed to presentation layers. This package is kept pure and
free of I/O or persistence concerns.

# Key Entities

  - Symbol: A value from a small finite tape alphabet (0 is the blank by default).
  - Direction: Head movement, exactly Left or Right.
  - StateID: A densely interned control state; Halt denotes "no next state".
  - Record: A parsed instruction line, before state names are interned.
  - Instruction: An interned (state, symbol) -> (state|Halt, symbol, direction) rule.
  - Snapshot: A copy of the observable machine state for reporting.
*/
package domain
