// Package env implements test-environment macro tables: named, fixed
// assembly-text expansions that bootstrap minimal RISC-V test programs.
//
// A macro either carries its expansion lines directly or forwards to
// another macro (an alias). Defining a macro always replaces any prior
// definition of the same name, so a table built on top of a conflicting
// variant resolves to the later definition.
package env

import (
	"slices"
	"strings"
)

// Macro is a single named expansion. Alias and Lines are mutually
// exclusive: an alias macro expands to whatever its target expands to.
type Macro struct {
	Name  string
	Alias string
	Lines []string
}

// Env is an ordered macro table plus the equates consumed by the
// expander (register conventions such as TESTNUM).
type Env struct {
	names   []string
	macros  map[string]Macro
	equates map[string]string
}

// New returns an empty environment.
func New() *Env {
	return &Env{
		macros:  make(map[string]Macro),
		equates: make(map[string]string),
	}
}

// Define installs a macro, replacing any prior definition of the same
// name. Replacement is silent: the undefine-then-define protocol is the
// normal way a variant environment overrides another.
func (env *Env) Define(m Macro) {
	if _, ok := env.macros[m.Name]; !ok {
		env.names = append(env.names, m.Name)
	}
	env.macros[m.Name] = m
}

// Undefine removes a macro. Removing an unknown name is a no-op.
func (env *Env) Undefine(name string) {
	if _, ok := env.macros[name]; !ok {
		return
	}
	delete(env.macros, name)
	env.names = slices.DeleteFunc(env.names, func(a string) bool { return a == name })
}

// Lookup returns the macro definition for a name.
func (env *Env) Lookup(name string) (m Macro, ok bool) {
	m, ok = env.macros[name]
	return
}

// Expand resolves a name through any alias chain and returns the literal
// expansion lines. Expansion is stateless: the same name always yields
// the same lines.
func (env *Env) Expand(name string) (lines []string, err error) {
	seen := map[string]bool{}

	for {
		if seen[name] {
			err = ErrAliasLoop(name)
			return
		}
		seen[name] = true

		m, ok := env.macros[name]
		if !ok {
			err = ErrMacroUnknown(name)
			return
		}
		if m.Alias == "" {
			lines = slices.Clone(m.Lines)
			return
		}
		name = m.Alias
	}
}

// Names lists the defined macro names in definition order.
func (env *Env) Names() []string {
	return slices.Clone(env.names)
}

// Equate sets a named equate, replacing any prior value.
func (env *Env) Equate(name, value string) {
	env.equates[name] = value
}

// Equates returns a copy of the equate table.
func (env *Env) Equates() map[string]string {
	out := make(map[string]string, len(env.equates))
	for name, value := range env.equates {
		out[name] = value
	}
	return out
}

// String renders the table as "NAME: line; line" entries, one per macro.
func (env *Env) String() string {
	var sb strings.Builder
	for _, name := range env.names {
		sb.WriteString(name)
		sb.WriteString(":")
		m := env.macros[name]
		if m.Alias != "" {
			sb.WriteString(" -> ")
			sb.WriteString(m.Alias)
		} else {
			for n, line := range m.Lines {
				if n > 0 {
					sb.WriteString(";")
				}
				sb.WriteString(" ")
				sb.WriteString(line)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
