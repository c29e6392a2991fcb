package turing_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/turing"
)

// ExampleCompile runs the two-state busy beaver from an in-memory table.
func ExampleCompile() {
	src := `
A 0 -> B 1 R
A 1 -> B 1 L
B 0 -> A 1 L
B 1 -> Halt 1 R
`
	m, err := turing.Compile(strings.NewReader(src), "busy_beaver_2")
	if err != nil {
		log.Fatal(err)
	}

	report, err := m.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %s after %d steps, %d ones\n", report.Machine, report.Status, report.Steps, report.Ones)
	fmt.Println(m.Snapshot().Tape)
	// Output:
	// busy_beaver_2: halted after 6 steps, 4 ones
	// 1 1 1 1
}

// ExampleMachine_Step drives the machine one instruction at a time.
func ExampleMachine_Step() {
	m, err := turing.Compile(strings.NewReader("A 0 -> Halt 1 R\n"), "busy_beaver_1")
	if err != nil {
		log.Fatal(err)
	}

	for {
		ok, err := m.Step()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}
		snap := m.Snapshot()
		fmt.Printf("state=%s steps=%d tape=[%s] head=%d\n", snap.State, snap.Steps, snap.Tape, snap.Head)
	}
	// Output:
	// state=Halt steps=1 tape=[1 0] head=1
}

// ExampleFromLoader runs a table from the bundled catalog.
func ExampleFromLoader() {
	m, err := turing.FromLoader(turing.Catalog(), "busy_beaver_4")
	if err != nil {
		log.Fatal(err)
	}

	report, err := m.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Steps, report.Ones, report.Zeros)
	// Output:
	// 107 13 1
}
