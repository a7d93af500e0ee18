package expand

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rvgo/rvtest/env"
	"github.com/rvgo/rvtest/token"
)

func parse(t *testing.T, program []string) (prog *Program, err error) {
	t.Helper()

	ex := &Expander{Env: env.VirtualSingleCore()}
	return ex.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func texts(prog *Program) (out []string) {
	for _, line := range prog.Lines {
		out = append(out, line.Text)
	}
	return
}

func TestExpanderEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, nil)
	assert.NoError(err)
	assert.Empty(prog.Lines)
}

func TestExpanderCodeBegin(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		"RVTEST_CODE_BEGIN",
		"nop",
	})
	assert.NoError(err)
	assert.Equal([]string{".text", "_start:", "nop"}, texts(prog))

	// The first two tokens of the stream are the section directive and
	// the entry label.
	var all []token.Token
	for _, tok := range prog.Tokens() {
		all = append(all, tok)
	}
	assert.True(len(all) >= 2)
	assert.Equal(token.Directive, all[0].Kind)
	assert.Equal(".text", all[0].Text)
	assert.Equal(token.Ident, all[1].Kind)
	assert.Equal("_start", all[1].Text)
}

func TestExpanderPass(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{"RVTEST_PASS"})
	assert.NoError(err)

	instrs := prog.Instructions()
	assert.Equal(3, len(instrs))

	second := instrs[1]
	last := second[len(second)-1]
	assert.Equal(token.Int, last.Kind)
	assert.Equal(int64(93), last.Val)

	third := instrs[2]
	assert.Equal("ecall", third[0].Text)
}

func TestExpanderFail(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{"RVTEST_FAIL"})
	assert.NoError(err)

	// The TESTNUM equate resolves to its register.
	assert.Equal([]string{"mv a0, gp", "ebreak"}, texts(prog))

	instrs := prog.Instructions()
	assert.Equal(2, len(instrs))

	first := instrs[0]
	assert.Equal("mv", first[0].Text)
	assert.Equal(token.Register, first[1].Kind)
	assert.Equal("a0", first[1].Text)
	assert.Equal(token.Register, first[3].Kind)
	assert.Equal("gp", first[3].Text)
}

func TestExpanderEmptyMacros(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		"RVTEST_CODE_END",
		"RVTEST_DATA_BEGIN",
		"RVTEST_DATA_END",
	})
	assert.NoError(err)
	assert.Empty(prog.Lines)
}

func TestExpanderWidthSelector(t *testing.T) {
	assert := assert.New(t)

	wide, err := parse(t, []string{"RVTEST_RV64U"})
	assert.NoError(err)
	narrow, err := parse(t, []string{"RVTEST_RV32U"})
	assert.NoError(err)

	assert.Equal(narrow.String(), wide.String())
	assert.Equal([]string{".globl _start"}, texts(wide))
}

func TestExpanderLabeledInvocation(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{"pass: RVTEST_PASS"})
	assert.NoError(err)
	assert.Equal([]string{"pass:", "li a0, 0", "li a7, 93", "ecall"}, texts(prog))
}

func TestExpanderEqu(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		".equ RESULT 0x2a",
		"li a0, RESULT",
		"li a1, $(RESULT + 1)",
		"li a2, $(LINENO)",
	})
	assert.NoError(err)
	assert.Equal([]string{
		"li a0, 0x2a",
		"li a1, 43",
		"li a2, 4",
	}, texts(prog))
}

func TestExpanderMacro(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		".macro CHECK testnum value",
		".equ @num testnum",
		"li t0, value",
		"li gp, testnum",
		"RVTEST_FAIL",
		".endm",
		"CHECK 2 0x10",
	})
	assert.NoError(err)
	assert.Equal([]string{
		"li t0, 0x10",
		"li gp, 2",
		"mv a0, gp",
		"ebreak",
	}, texts(prog))
}

func TestExpanderMacroLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		".macro SPIN",
		"@loop: nop",
		".endm",
		"SPIN",
	})
	assert.NoError(err)
	assert.Equal([]string{"SPIN_2_loop: nop"}, texts(prog))
}

func TestExpanderRedefine(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		".undef RVTEST_PASS",
		".macro RVTEST_PASS",
		"li a0, 1",
		"ecall",
		".endm",
		"RVTEST_PASS",
	})
	assert.NoError(err)
	assert.Equal([]string{"li a0, 1", "ecall"}, texts(prog))
}

func TestExpanderPredefine(t *testing.T) {
	assert := assert.New(t)

	ex := &Expander{Env: env.VirtualSingleCore()}
	ex.Predefine("TESTNUM", "t3")

	prog, err := ex.Parse(strings.NewReader("RVTEST_FAIL"))
	assert.NoError(err)
	assert.Equal([]string{"mv a0, t3", "ebreak"}, texts(prog))
}

func TestExpanderComment(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		"nop ; trailing comment",
		"; whole-line comment",
		"",
	})
	assert.NoError(err)
	assert.Equal([]string{"nop"}, texts(prog))
}

func TestExpanderWriteTo(t *testing.T) {
	assert := assert.New(t)

	prog, err := parse(t, []string{
		"RVTEST_RV64U",
		"RVTEST_CODE_BEGIN",
		"nop",
		"RVTEST_PASS",
		"RVTEST_CODE_END",
	})
	assert.NoError(err)

	expected := strings.Join([]string{
		"\t.globl _start",
		"\t.text",
		"_start:",
		"\tnop",
		"\tli a0, 0",
		"\tli a7, 93",
		"\tecall",
		"",
	}, "\n")

	var sb strings.Builder
	n, err := prog.WriteTo(&sb)
	assert.NoError(err)
	assert.Equal(expected, sb.String())
	assert.Equal(int64(len(expected)), n)
}

func TestExpanderErrSyntax(t *testing.T) {
	assert := assert.New(t)

	// Various syntax errors
	table := [](struct {
		prog string
		line int
	}){
		{".equ", 1},
		{".equ A", 1},
		{".equ A 1\n.equ A 2\n", 2},
		{".undef", 1},
		{".macro", 1},
		{".macro A\n.macro B\n", 2},
		{".macro A\n.endm\n.macro A\n", 3},
		{".macro RVTEST_PASS\n.endm\n", 1},
		{".endm", 1},
		{".macro A\nnop\n", 2},
		{".macro A B\n.endm\nA\n", 3},
		{"RVTEST_PASS 1", 1},
		{"li a0, $(", 1},
		{"li a0, $(no_such_name)", 1},
		{"li a0, $(\"aaa\")", 1},
		{"li a0, 0z", 1},
	}

	for _, entry := range table {
		ex := &Expander{Env: env.VirtualSingleCore()}
		_, err := ex.Parse(strings.NewReader(entry.prog))
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err != nil {
			assert.True(errors.As(err, &se), entry.prog)
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
	}
}
