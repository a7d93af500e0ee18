// Package expand turns test-program templates into expanded assembly.
//
// A template is plain assembly text whose lines may invoke environment
// macros by name, define local macros with .macro/.endm, remove live
// definitions with .undef, and bind equates with .equ. Expansion is a
// single pass: each emitted line is the literal text of the template or
// of a macro body, with equates substituted word by word and $(...)
// expressions evaluated at expansion time.
package expand

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"

	"github.com/rvgo/rvtest/env"
	"github.com/rvgo/rvtest/token"
)

// Macro is a local macro defined by a template with .macro/.endm.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Expander expands one template against a test environment.
type Expander struct {
	Verbose bool     // If set, verbosely logs the expansion.
	Env     *env.Env // Environment macro table; nil means empty.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of local macros.

	undefined map[string]bool // Environment names removed by .undef.
	lines     []Line
}

// Predefine defines a new equate or redefines an existing equate before
// parsing begins.
func (ex *Expander) Predefine(equ string, value string) {
	if ex.predefine == nil {
		ex.predefine = map[string]string{equ: value}
	} else {
		ex.predefine[equ] = value
	}
}

// live reports whether name currently resolves to a macro, local or
// environment, honoring .undef shadowing.
func (ex *Expander) live(name string) bool {
	if _, ok := ex.Macro[name]; ok {
		return true
	}
	if ex.Env == nil || ex.undefined[name] {
		return false
	}
	_, ok := ex.Env.Lookup(name)
	return ok
}

// emit appends one expanded line, tokenizing its final text.
func (ex *Expander) emit(text string, lineno int, origin string) (err error) {
	tokens, err := token.Tokenize(text, lineno)
	if err != nil {
		return
	}
	ex.lines = append(ex.lines, Line{
		LineNo: lineno,
		Origin: origin,
		Text:   text,
		Tokens: tokens,
	})
	return
}

// parseLine expands a single template or macro-body line.
func (ex *Expander) parseLine(line string, lineno int, origin string) (err error) {
	// Set line number.
	ex.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ex.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words := fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := ex.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		ex.Equate[words[1]] = words[2]
		return
	}

	// .undef NAME
	if words[0] == ".undef" {
		if len(words) != 2 {
			err = ErrUndefSyntax
			return
		}
		delete(ex.Macro, words[1])
		if ex.undefined == nil {
			ex.undefined = make(map[string]bool)
		}
		ex.undefined[words[1]] = true
		return
	}

	// Equate substitution, word by word. Trailing commas stay attached
	// to the word, so strip them before lookup.
	for n, word := range words {
		bare, comma := strings.CutSuffix(word, ",")
		equate, ok := ex.Equate[bare]
		if ok {
			if comma {
				equate += ","
			}
			words[n] = equate
		}
	}

	// Leading labels split off so that a labeled macro invocation keeps
	// its label on a line of its own ahead of the expansion.
	rest := words
	var labels []string
	for strings.HasSuffix(rest[0], ":") {
		labels = append(labels, rest[0])
		rest = rest[1:]
		if len(rest) == 0 {
			return ex.emit(strings.Join(words, " "), lineno, origin)
		}
	}
	if len(labels) > 0 && ex.live(rest[0]) {
		err = ex.emit(strings.Join(labels, " "), lineno, origin)
		if err != nil {
			return
		}
	}

	// Local macro invocation.
	macro, ok := ex.Macro[rest[0]]
	if ok {
		name := rest[0]

		args := rest[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(ex.Equate)
		for n, arg := range macro.Args {
			ex.Equate[arg] = args[n]
		}
		defer func() { ex.Equate = old_equate }()

		for n, body := range macro.Lines {
			bodyno := macro.LineNo + n

			body = strings.ReplaceAll(body, "@", fmt.Sprintf("%v_%v_", name, bodyno))
			err = ex.parseLine(body, bodyno, name)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: bodyno, Err: err}
				err = &ErrSyntax{LineNo: bodyno, Line: body, Err: err}
				return
			}
		}
		return
	}

	// Environment macro invocation. Environment macros take no
	// arguments: they are fixed-text substitutions.
	if ex.Env != nil && !ex.undefined[rest[0]] {
		if _, ok := ex.Env.Lookup(rest[0]); ok {
			name := rest[0]
			if len(rest) != 1 {
				err = ErrMacroExtraArgs
				return
			}

			var body []string
			body, err = ex.Env.Expand(name)
			if err != nil {
				return
			}

			for _, text := range body {
				err = ex.parseLine(text, lineno, name)
				if err != nil {
					err = &ErrMacro{Macro: name, Line: lineno, Err: err}
					return
				}
			}
			return
		}
	}

	return ex.emit(strings.Join(words, " "), lineno, origin)
}

// fields splits a line into non-empty whitespace-separated words.
func fields(line string) []string {
	return strings.Fields(line)
}

// Parse expands an input template into a Program.
func (ex *Expander) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ex.lines = ex.lines[:0]
	if ex.Macro == nil {
		ex.Macro = make(map[string](*Macro))
	}
	clear(ex.Macro)
	clear(ex.undefined)

	ex.Equate = map[string]string{"LINENO": "0"}
	if ex.Env != nil {
		maps.Copy(ex.Equate, ex.Env.Equates())
	}
	for attr, val := range ex.predefine {
		ex.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ex.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			if ex.live(words[1]) {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			ex.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = ex.parseLine(line, lineno, "")
		if err != nil {
			return
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Lines: append([]Line(nil), ex.lines...),
	}

	return
}
