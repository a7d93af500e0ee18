package token

import (
	"github.com/rvgo/rvtest/translate"
)

var f = translate.From

type ErrBadRune struct {
	Rune rune
	Line int
	Col  int
}

func (err ErrBadRune) Error() string {
	return f("line %d col %d: unexpected character %q", err.Line, err.Col, err.Rune)
}

type ErrBadNumber struct {
	Text string
	Line int
	Col  int
}

func (err ErrBadNumber) Error() string {
	return f("line %d col %d: '%v' is not a number", err.Line, err.Col, err.Text)
}

type ErrUnterminatedString struct {
	Line int
	Col  int
}

func (err ErrUnterminatedString) Error() string {
	return f("line %d col %d: unterminated string", err.Line, err.Col)
}
