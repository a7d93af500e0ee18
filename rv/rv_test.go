package rv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterNumber(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"ra", 1},
		{"sp", 2},
		{"gp", GP},
		{"a0", A0},
		{"a7", A7},
		{"t6", 31},
		{"fp", 8},
		{"s0", 8},
		{"x0", 0},
		{"x31", 31},
		{"A0", A0}, // case-insensitive
	}

	for _, entry := range table {
		n, ok := RegisterNumber(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.n, n, entry.name)
	}

	_, ok := RegisterNumber("a8")
	assert.False(ok)
	_, ok = RegisterNumber("x32")
	assert.False(ok)
	assert.False(IsRegister("TESTNUM"))
	assert.True(IsRegister("gp"))
}

func TestRegisterName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("zero", RegisterName(0))
	assert.Equal("a0", RegisterName(A0))
	assert.Equal("t6", RegisterName(31))
	assert.Equal("x32", RegisterName(32))

	// Names round-trip through numbers.
	for n, name := range RegisterNames {
		back, ok := RegisterNumber(name)
		assert.True(ok, name)
		assert.Equal(n, back, name)
	}
}
