// Package token tokenizes lines of RISC-V assembly text so that macro
// expansions can be inspected and compared as token streams rather than
// raw strings.
package token

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rvgo/rvtest/rv"
)

// Kind is the lexical class of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	Directive = Kind(0) // directive
	Ident     = Kind(1) // ident
	Register  = Kind(2) // register
	Int       = Kind(3) // int
	String    = Kind(4) // string
	Comma     = Kind(5) // comma
	Colon     = Kind(6) // colon
	LParen    = Kind(7) // lparen
	RParen    = Kind(8) // rparen
	Operator  = Kind(9) // operator
)

// Token is a single lexical element of an assembly line.
type Token struct {
	Kind Kind
	Text string // text as written, including any leading '.'
	Val  int64  // value for Int tokens
	Line int
	Col  int
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentRune(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == '.'
}

// Tokenize splits one line of assembly text into tokens. A '#' starts a
// comment running to the end of the line. Identifiers naming an integer
// register are classified as Register tokens.
func Tokenize(line string, lineno int) (tokens []Token, err error) {
	runes := []rune(line)

	for pos := 0; pos < len(runes); {
		ch := runes[pos]
		col := pos + 1

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			pos++

		case ch == '#':
			return // comment to end of line

		case ch == ',':
			tokens = append(tokens, Token{Kind: Comma, Text: ",", Line: lineno, Col: col})
			pos++

		case ch == ':':
			tokens = append(tokens, Token{Kind: Colon, Text: ":", Line: lineno, Col: col})
			pos++

		case ch == '(':
			tokens = append(tokens, Token{Kind: LParen, Text: "(", Line: lineno, Col: col})
			pos++

		case ch == ')':
			tokens = append(tokens, Token{Kind: RParen, Text: ")", Line: lineno, Col: col})
			pos++

		case strings.ContainsRune("+-*/%|&^~<>", ch):
			tokens = append(tokens, Token{Kind: Operator, Text: string(ch), Line: lineno, Col: col})
			pos++

		case ch == '"':
			end := pos + 1
			for end < len(runes) && runes[end] != '"' {
				if runes[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(runes) {
				err = ErrUnterminatedString{Line: lineno, Col: col}
				return
			}
			text := string(runes[pos : end+1])
			tokens = append(tokens, Token{Kind: String, Text: text, Line: lineno, Col: col})
			pos = end + 1

		case unicode.IsDigit(ch):
			end := pos
			for end < len(runes) && (isIdentRune(runes[end]) || unicode.IsDigit(runes[end])) {
				end++
			}
			text := string(runes[pos:end])
			var val int64
			val, err = strconv.ParseInt(text, 0, 64)
			if err != nil {
				err = ErrBadNumber{Text: text, Line: lineno, Col: col}
				return
			}
			tokens = append(tokens, Token{Kind: Int, Text: text, Val: val, Line: lineno, Col: col})
			pos = end

		case ch == '.' || isIdentStart(ch):
			end := pos + 1
			for end < len(runes) && isIdentRune(runes[end]) {
				end++
			}
			text := string(runes[pos:end])
			kind := Ident
			switch {
			case ch == '.':
				kind = Directive
			case rv.IsRegister(text):
				kind = Register
			}
			tokens = append(tokens, Token{Kind: kind, Text: text, Line: lineno, Col: col})
			pos = end

		default:
			err = ErrBadRune{Rune: ch, Line: lineno, Col: col}
			return
		}
	}

	return
}

// StripLabels removes any leading "name:" label prefixes from a token
// line and returns the remaining tokens plus the label names removed.
func StripLabels(tokens []Token) (rest []Token, labels []string) {
	rest = tokens
	for len(rest) >= 2 && (rest[0].Kind == Ident || rest[0].Kind == Register) && rest[1].Kind == Colon {
		labels = append(labels, rest[0].Text)
		rest = rest[2:]
	}
	return
}

// IsInstruction reports whether a token line is an instruction statement:
// after any labels, it begins with a mnemonic rather than a directive.
func IsInstruction(tokens []Token) bool {
	rest, _ := StripLabels(tokens)
	if len(rest) == 0 {
		return false
	}
	return rest[0].Kind == Ident
}
