package expand

import (
	"io"
	"iter"
	"strings"

	"github.com/rvgo/rvtest/internal"
	"github.com/rvgo/rvtest/token"
)

// Line is one line of expanded assembly text.
type Line struct {
	LineNo int    // Template line the text came from.
	Origin string // Macro that produced it, or "" for direct lines.
	Text   string
	Tokens []token.Token
}

// Program is the result of expanding a template.
type Program struct {
	Lines []Line
}

// Tokens yields every token of the expanded program along with the index
// of the line it came from.
func (prog *Program) Tokens() iter.Seq2[int, token.Token] {
	seqs := make([]iter.Seq2[int, token.Token], len(prog.Lines))
	for n := range prog.Lines {
		line := &prog.Lines[n]
		seqs[n] = func(yield func(int, token.Token) bool) {
			for _, tok := range line.Tokens {
				if !yield(n, tok) {
					return
				}
			}
		}
	}
	return internal.IterSeq2Concat(seqs...)
}

// Instructions returns the token lines that are instruction statements.
func (prog *Program) Instructions() (out [][]token.Token) {
	for _, line := range prog.Lines {
		if token.IsInstruction(line.Tokens) {
			out = append(out, line.Tokens)
		}
	}
	return
}

// startsWithLabel reports whether a line begins with a "name:" label.
func startsWithLabel(tokens []token.Token) bool {
	_, labels := token.StripLabels(tokens)
	return len(labels) > 0
}

// WriteTo emits the expanded assembly text. Labels and empty lines stay
// in the first column; everything else is indented one tab.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	var sb strings.Builder
	for _, line := range prog.Lines {
		if len(line.Tokens) > 0 && !startsWithLabel(line.Tokens) {
			sb.WriteString("\t")
		}
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}

	written, err := io.WriteString(w, sb.String())
	return int64(written), err
}

// String renders the expanded assembly text.
func (prog *Program) String() string {
	var sb strings.Builder
	_, _ = prog.WriteTo(&sb)
	return sb.String()
}
