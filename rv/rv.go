// Package rv holds RISC-V register naming conventions shared by the
// tokenizer and the lint checks.
package rv

import (
	"fmt"
	"strconv"
	"strings"
)

// RegisterNames lists the ABI names of the 32 integer registers, indexed
// by register number.
var RegisterNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2", "s0", "s1", "a0", "a1",
	"a2", "a3", "a4", "a5", "a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Conventional register numbers used by the test environment.
const (
	Zero = 0
	RA   = 1
	SP   = 2
	GP   = 3 // test-number register (TESTNUM)
	A0   = 10
	A7   = 17 // system-call selector
)

// ExitSyscall is the system-call number requesting process termination.
const ExitSyscall = 93

var numberByName map[string]int

func init() {
	numberByName = make(map[string]int, 34)
	for n, name := range RegisterNames {
		numberByName[name] = n
	}
	// Accepted aliases.
	numberByName["fp"] = 8
	for n := range 32 {
		numberByName[fmt.Sprintf("x%d", n)] = n
	}
}

// RegisterNumber maps an ABI name, alias, or xN name to a register number.
func RegisterNumber(name string) (n int, ok bool) {
	n, ok = numberByName[strings.ToLower(name)]
	return
}

// RegisterName returns the ABI name of a register number.
func RegisterName(n int) string {
	if n < 0 || n >= len(RegisterNames) {
		return "x" + strconv.Itoa(n)
	}
	return RegisterNames[n]
}

// IsRegister reports whether a word names an integer register.
func IsRegister(name string) bool {
	_, ok := RegisterNumber(name)
	return ok
}
