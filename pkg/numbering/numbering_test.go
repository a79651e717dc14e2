package numbering

import (
	"strings"
	"testing"

	"notemark-be/pkg/grammar"

	"github.com/stretchr/testify/assert"
)

func newProcessor() *Processor {
	return NewProcessor(grammar.Default(), 4)
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no placeholders", "# Title\n\n- a\n1. kept", "# Title\n\n- a\n1. kept"},
		{"flat list", "__NUM__. a\n__NUM__. b\n__NUM__. c", "1. a\n2. b\n3. c"},
		{"empty item", "__NUM__. \n__NUM__. x", "1. \n2. x"},
		{
			"nested levels",
			"__NUM__. top\n    __NUM__. a\n        __NUM__. i\n__NUM__. top2",
			"1. top\n    a. a\n        i. i\n2. top2",
		},
		{
			"paragraph restarts list",
			"__NUM__. a\n__NUM__. b\n\ntext\n\n__NUM__. c",
			"1. a\n2. b\n\ntext\n\n1. c",
		},
		{
			"blank lines keep counting",
			"__NUM__. a\n\n__NUM__. b",
			"1. a\n\n2. b",
		},
		{
			"nested content keeps parent counter",
			"__NUM__. a\n    child text\n__NUM__. b",
			"1. a\n    child text\n2. b",
		},
		{
			"fence body untouched",
			"__NUM__. a\n    ```\n    __NUM__. raw\n    ```\n__NUM__. b",
			"1. a\n    ```\n    __NUM__. raw\n    ```\n2. b",
		},
		{
			"fourth level cycles to arabic",
			"__NUM__. a\n    __NUM__. b\n        __NUM__. c\n            __NUM__. d",
			"1. a\n    a. b\n        i. c\n            1. d",
		},
		{
			"partial dedent restarts deeper level",
			"__NUM__. a\n    __NUM__. b\n        __NUM__. c\n    __NUM__. d\n        __NUM__. e",
			"1. a\n    a. b\n        i. c\n    b. d\n        i. e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newProcessor().Process(tt.input))
		})
	}
}

func TestProcess_DepthSequence(t *testing.T) {
	depths := []int{0, 1, 1, 2, 2, 0, 1}
	lines := make([]string, len(depths))
	for i, d := range depths {
		lines[i] = strings.Repeat(" ", d*4) + "__NUM__. x"
	}

	out := strings.Split(newProcessor().Process(strings.Join(lines, "\n")), "\n")
	var labels []string
	for _, l := range out {
		labels = append(labels, strings.TrimSuffix(strings.TrimSpace(l), ". x"))
	}
	assert.Equal(t, []string{"1", "a", "b", "i", "ii", "2", "a"}, labels)
}

func TestProcess_LongList(t *testing.T) {
	var in, want []string
	for i := 1; i <= 100; i++ {
		in = append(in, "__NUM__. item")
		want = append(want, Label(0, i)+". item")
	}
	assert.Equal(t, strings.Join(want, "\n"), newProcessor().Process(strings.Join(in, "\n")))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "a", Letters(1))
	assert.Equal(t, "z", Letters(26))
	assert.Equal(t, "aa", Letters(27))
	assert.Equal(t, "az", Letters(52))
	assert.Equal(t, "ba", Letters(53))
	assert.Equal(t, "", Letters(0))

	assert.Equal(t, "iv", Roman(4))
	assert.Equal(t, "ix", Roman(9))
	assert.Equal(t, "xiv", Roman(14))
	assert.Equal(t, "mcmxcix", Roman(1999))
	assert.Equal(t, "0", Roman(0))

	assert.Equal(t, "3", Label(3, 3))
	assert.Equal(t, "c", Label(4, 3))
	assert.Equal(t, "iii", Label(5, 3))
}
