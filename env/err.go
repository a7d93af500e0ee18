package env

import (
	"github.com/rvgo/rvtest/translate"
)

var f = translate.From

type ErrMacroUnknown string

func (err ErrMacroUnknown) Error() string {
	return f("macro %v undefined", string(err))
}

type ErrAliasLoop string

func (err ErrAliasLoop) Error() string {
	return f("macro %v alias loop", string(err))
}
