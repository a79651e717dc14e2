package preprocess

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"notemark-be/pkg/grammar"
)

var (
	ErrInsufficientColumns   = errors.New("column list requires at least 2 columns")
	ErrInvalidColumnRatioSum = errors.New("column width ratios must sum to 1.0")
)

const ratioTolerance = 1e-4

// ColumnsValidator checks column layouts before any block is built.
type ColumnsValidator struct {
	g *grammar.Grammar
}

func NewColumnsValidator(g *grammar.Grammar) *ColumnsValidator {
	return &ColumnsValidator{g: g}
}

type columnFrame struct {
	isList  bool
	line    int
	columns int
	ratios  []float64
}

// Validate returns the first violation found, wrapping one of the sentinel
// errors with the line of the offending column list.
func (v *ColumnsValidator) Validate(text string) error {
	var stack []*columnFrame
	inCode := false

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, grammar.CodeFence) {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		switch {
		case v.g.ColumnListStart.MatchString(trimmed):
			stack = append(stack, &columnFrame{isList: true, line: i + 1})
		case v.g.ColumnStart.MatchString(trimmed):
			if n := len(stack); n > 0 && stack[n-1].isList {
				parent := stack[n-1]
				parent.columns++
				if m := v.g.ColumnStart.FindStringSubmatch(trimmed); m[1] != "" {
					if r, err := strconv.ParseFloat(m[1], 64); err == nil {
						parent.ratios = append(parent.ratios, r)
					}
				}
			}
			stack = append(stack, &columnFrame{line: i + 1})
		case v.g.ColumnEnd.MatchString(trimmed):
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := top.check(); err != nil {
				return err
			}
		}
	}

	// unclosed lists are still checked
	for i := len(stack) - 1; i >= 0; i-- {
		if err := stack[i].check(); err != nil {
			return err
		}
	}
	return nil
}

func (f *columnFrame) check() error {
	if !f.isList {
		return nil
	}
	if f.columns < 2 {
		return fmt.Errorf("line %d: found %d column(s): %w", f.line, f.columns, ErrInsufficientColumns)
	}
	if len(f.ratios) != f.columns {
		return nil
	}
	sum := 0.0
	for _, r := range f.ratios {
		sum += r
	}
	if math.Abs(sum-1.0) > ratioTolerance {
		return fmt.Errorf("line %d: ratios sum to %.4f: %w", f.line, sum, ErrInvalidColumnRatioSum)
	}
	return nil
}
