package env

import (
	"fmt"

	"github.com/rvgo/rvtest/rv"
)

// Entry is the global symbol marking where a generated test program
// begins executing.
const Entry = "_start"

// TestNum is the equate naming the register that carries the number of
// the currently running test case.
const TestNum = "TESTNUM"

// Canonical macro names recognized by test templates.
const (
	RV64U     = "RVTEST_RV64U"
	RV32U     = "RVTEST_RV32U"
	CodeBegin = "RVTEST_CODE_BEGIN"
	CodeEnd   = "RVTEST_CODE_END"
	DataBegin = "RVTEST_DATA_BEGIN"
	DataEnd   = "RVTEST_DATA_END"
	Pass      = "RVTEST_PASS"
	Fail      = "RVTEST_FAIL"
)

// VirtualSingleCore builds the macro table for the single-core virtual
// execution environment.
//
// Both architecture-width selectors resolve to the same entry-point
// declaration; the end and data-section hooks are empty, present only so
// templates written against a richer environment remain valid. The pass
// sequence exits the hosted program with status 0 through the exit
// system call; the fail sequence moves the test number into the result
// register and traps.
func VirtualSingleCore() *Env {
	env := New()

	env.Define(Macro{Name: RV64U, Alias: RV32U})
	env.Define(Macro{Name: RV32U, Lines: []string{
		".globl " + Entry,
	}})

	env.Define(Macro{Name: CodeBegin, Lines: []string{
		".text",
		Entry + ":",
	}})
	env.Define(Macro{Name: CodeEnd})
	env.Define(Macro{Name: DataBegin})

	env.Define(Macro{Name: Pass, Lines: []string{
		fmt.Sprintf("li %s, 0", rv.RegisterName(rv.A0)),
		fmt.Sprintf("li %s, %d", rv.RegisterName(rv.A7), rv.ExitSyscall),
		"ecall",
	}})
	env.Define(Macro{Name: Fail, Lines: []string{
		fmt.Sprintf("mv %s, %s", rv.RegisterName(rv.A0), TestNum),
		"ebreak",
	}})

	env.Define(Macro{Name: DataEnd})

	env.Equate(TestNum, rv.RegisterName(rv.GP))

	return env
}
