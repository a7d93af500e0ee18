// Package lint checks an expanded test program against the conventions
// the virtual execution environment expects: a single entry declaration,
// code placed in the text section behind the entry label, and a
// reachable pass or fail sequence. Findings are advisory; a program that
// violates them still expands, it just fails later in the external
// toolchain or at run time.
package lint

import (
	"github.com/rvgo/rvtest/env"
	"github.com/rvgo/rvtest/expand"
	"github.com/rvgo/rvtest/rv"
	"github.com/rvgo/rvtest/token"
	"github.com/rvgo/rvtest/translate"
)

var f = translate.From

// Finding is one convention violation.
type Finding struct {
	LineNo  int
	Message string
}

func (fd Finding) String() string {
	return f("line %d: %v", fd.LineNo, fd.Message)
}

// isGlobl reports whether a line declares the given symbol global.
func isGlobl(tokens []token.Token, symbol string) bool {
	rest, _ := token.StripLabels(tokens)
	return len(rest) == 2 &&
		rest[0].Kind == token.Directive &&
		(rest[0].Text == ".globl" || rest[0].Text == ".global") &&
		rest[1].Text == symbol
}

// isDirective reports whether a line is the given bare directive.
func isDirective(tokens []token.Token, name string) bool {
	rest, _ := token.StripLabels(tokens)
	return len(rest) >= 1 && rest[0].Kind == token.Directive && rest[0].Text == name
}

// hasLabel reports whether a line carries the given label.
func hasLabel(tokens []token.Token, name string) bool {
	_, labels := token.StripLabels(tokens)
	for _, label := range labels {
		if label == name {
			return true
		}
	}
	return false
}

// mnemonic returns the mnemonic of an instruction line, or "".
func mnemonic(tokens []token.Token) string {
	rest, _ := token.StripLabels(tokens)
	if len(rest) == 0 || rest[0].Kind != token.Ident {
		return ""
	}
	return rest[0].Text
}

// operands returns the instruction tokens after the mnemonic, commas
// dropped.
func operands(tokens []token.Token) (out []token.Token) {
	rest, _ := token.StripLabels(tokens)
	if len(rest) < 2 {
		return
	}
	for _, tok := range rest[1:] {
		if tok.Kind != token.Comma {
			out = append(out, tok)
		}
	}
	return
}

// Check runs every convention check against an expanded program.
func Check(prog *expand.Program) (findings []Finding) {
	findings = append(findings, checkEntry(prog)...)
	findings = append(findings, checkOrdering(prog)...)
	findings = append(findings, checkTermination(prog)...)
	return
}

// checkEntry wants exactly one global declaration of the entry symbol.
func checkEntry(prog *expand.Program) (findings []Finding) {
	var count int
	var last int
	for _, line := range prog.Lines {
		if isGlobl(line.Tokens, env.Entry) {
			count++
			last = line.LineNo
		}
	}
	switch {
	case count == 0:
		findings = append(findings, Finding{
			Message: f("entry symbol %v is never declared global", env.Entry),
		})
	case count > 1:
		findings = append(findings, Finding{
			LineNo:  last,
			Message: f("entry symbol %v declared global %d times", env.Entry, count),
		})
	}
	return
}

// checkOrdering wants the text-section directive and the entry label
// ahead of the first instruction, in that order.
func checkOrdering(prog *expand.Program) (findings []Finding) {
	textAt := -1
	entryAt := -1
	firstInstr := -1
	firstInstrLine := 0

	for n, line := range prog.Lines {
		switch {
		case textAt < 0 && isDirective(line.Tokens, ".text"):
			textAt = n
		case entryAt < 0 && hasLabel(line.Tokens, env.Entry):
			entryAt = n
		}
		if firstInstr < 0 && token.IsInstruction(line.Tokens) {
			firstInstr = n
			firstInstrLine = line.LineNo
		}
	}

	if firstInstr < 0 {
		return // nothing executable; entry checks already complain
	}

	if textAt < 0 || textAt > firstInstr {
		findings = append(findings, Finding{
			LineNo:  firstInstrLine,
			Message: f("instructions precede the .text section directive"),
		})
	}
	if entryAt < 0 || entryAt > firstInstr {
		findings = append(findings, Finding{
			LineNo:  firstInstrLine,
			Message: f("instructions precede the %v entry label", env.Entry),
		})
	}
	if textAt >= 0 && entryAt >= 0 && entryAt < textAt {
		findings = append(findings, Finding{
			Message: f("%v entry label precedes the .text section directive", env.Entry),
		})
	}
	return
}

// checkTermination wants the program to reach a pass sequence (ecall
// with the exit system call selected) or a fail sequence (ebreak behind
// a move of the test number into the result register).
func checkTermination(prog *expand.Program) (findings []Finding) {
	instrs := prog.Instructions()

	exitSelected := false
	terminates := false

	for n, instr := range instrs {
		switch mnemonic(instr) {
		case "li":
			ops := operands(instr)
			if len(ops) == 2 && ops[0].Text == rv.RegisterName(rv.A7) &&
				ops[1].Kind == token.Int && ops[1].Val == rv.ExitSyscall {
				exitSelected = true
			}
		case "ecall":
			if exitSelected {
				terminates = true
			}
		case "ebreak":
			terminates = true
			findings = append(findings, checkFailMove(instrs, n)...)
		}
	}

	if !terminates {
		findings = append(findings, Finding{
			Message: f("no pass or fail sequence: the test cannot terminate"),
		})
	}
	return
}

// checkFailMove wants the instruction before an ebreak to move the test
// number register into the result register.
func checkFailMove(instrs [][]token.Token, at int) (findings []Finding) {
	lineno := 0
	if len(instrs[at]) > 0 {
		lineno = instrs[at][0].Line
	}

	if at == 0 {
		findings = append(findings, Finding{
			LineNo:  lineno,
			Message: f("ebreak without a preceding move of the test number"),
		})
		return
	}

	prev := instrs[at-1]
	ops := operands(prev)
	ok := mnemonic(prev) == "mv" &&
		len(ops) == 2 &&
		ops[0].Text == rv.RegisterName(rv.A0) &&
		ops[1].Kind == token.Register

	if !ok {
		findings = append(findings, Finding{
			LineNo:  lineno,
			Message: f("ebreak not preceded by mv %v, <test-number register>", rv.RegisterName(rv.A0)),
		})
	}
	return
}
