package syntax

import (
	"strings"
	"testing"

	"notemark-be/pkg/grammar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(grammar.Default())

	for _, k := range r.Keys() {
		t.Run(string(k), func(t *testing.T) {
			d := r.Get(k)
			assert.NotNil(t, d.Pattern)
		})
	}

	toggle := r.Get(KeyToggle)
	assert.Equal(t, "+++", toggle.StartDelimiter)
	assert.Equal(t, "+++", toggle.EndDelimiter)
	assert.True(t, toggle.EndPattern.MatchString("+++"))
}

func TestRegistry_GetUnknownPanics(t *testing.T) {
	r := NewRegistry(grammar.Default())
	assert.Panics(t, func() { r.Get(Key("nope")) })
}

func TestRegistry_Patterns(t *testing.T) {
	r := NewRegistry(grammar.Default())

	tests := []struct {
		key   Key
		line  string
		match bool
	}{
		{KeyHeading, "## Title", true},
		{KeyHeading, "#### Too deep", false},
		{KeyDivider, "-----", true},
		{KeyColumn, "::: column 0.25", true},
		{KeyColumn, "::: column 1.5", false},
		{KeyColumnList, "::: Columns", true},
		{KeyTodoDone, "- [X] shipped", true},
		{KeyTableSeparator, "| --- | :-: |", true},
		{KeyBookmark, "[bookmark](ftp://x)", false},
		{KeyCode, "```python", true},
		{KeyCode, "```python \"caption\"", true},
		{KeyToggleableHeading, "+++## Section", true},
		{KeyToggleableHeading, "+++ #### Section", false},
		{KeyNumberedList, "12. twelve", true},
		{KeyNumberedList, "    b. nested", false},
		{KeyNumberedList, "ok. fine", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+"/"+tt.line, func(t *testing.T) {
			assert.Equal(t, tt.match, r.Get(tt.key).Pattern.MatchString(tt.line))
		})
	}
}

func TestPromptRegistry(t *testing.T) {
	pr := NewPromptRegistry(NewRegistry(grammar.Default()))

	p, ok := pr.Get(KeyCallout)
	require.True(t, ok)
	assert.Contains(t, p.Examples[0], "[callout]")

	sheet := pr.Cheatsheet()
	assert.True(t, strings.HasPrefix(sheet, "# Syntax"))
	for _, prompt := range pr.All() {
		assert.Contains(t, sheet, "## "+prompt.Title)
	}
}
