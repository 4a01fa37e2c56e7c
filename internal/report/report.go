// SPDX-License-Identifier: MIT

// Package report renders matrices as fixed-width text tables.
//
// Output layout for a 2×2 matrix with the default width and precision:
//
//	--- Input matrix A ---
//	|     1.00     2.00 |
//	|     3.00     4.00 |
//
// Headers and error lines are styled through lipgloss. The renderer is bound
// to the destination writer, so styling is dropped when it is not a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/matprod/matrix"
)

// Defaults for the value cell.
const (
	DefaultWidth     = 8
	DefaultPrecision = 2
)

// Section names of one run.
const (
	SectionA = "Input matrix A"
	SectionB = "Input matrix B"
	SectionC = "Result matrix C = A * B"
)

// NilPlaceholder replaces the rows of a nil or released matrix.
const NilPlaceholder = "  (matrix is nil)"

const (
	rowOpen  = "| "
	rowClose = "|"
)

// Printer writes matrices and error lines to one writer.
type Printer struct {
	w         io.Writer
	width     int
	precision int
	header    lipgloss.Style
	failure   lipgloss.Style
}

// Option configures a Printer.
type Option func(*Printer)

// WithWidth sets the minimum cell width (w ≥ 1).
func WithWidth(w int) Option {
	return func(p *Printer) {
		if w >= 1 {
			p.width = w
		}
	}
}

// WithPrecision sets the number of decimals (prec ≥ 0).
func WithPrecision(prec int) Option {
	return func(p *Printer) {
		if prec >= 0 {
			p.precision = prec
		}
	}
}

// New returns a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{
		w:         w,
		width:     DefaultWidth,
		precision: DefaultPrecision,
		header:    r.NewStyle().Bold(true),
		failure:   r.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	}
	for _, set := range opts {
		set(p)
	}

	return p
}

// Print writes a blank line, the section header and one line per row.
//
// Behavior highlights:
//   - nil or released m prints NilPlaceholder instead of rows.
//   - Cells use "%*.*f " so NaN and ±Inf keep the column width.
//
// Complexity: Time O(r*c).
func (p *Printer) Print(name string, m *matrix.Dense) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.header.Render("--- " + name + " ---"))
	b.WriteString("\n")

	if m == nil || m.Released() {
		b.WriteString(NilPlaceholder)
		b.WriteString("\n")
	} else {
		last := m.Cols() - 1
		m.Do(func(_, j int, v float64) bool {
			if j == 0 {
				b.WriteString(rowOpen)
			}
			fmt.Fprintf(&b, "%*.*f ", p.width, p.precision, v)
			if j == last {
				b.WriteString(rowClose)
				b.WriteString("\n")
			}

			return true
		})
	}

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return fmt.Errorf("report: write %q: %w", name, err)
	}

	return nil
}

// Errorf writes one "Error: ..." line.
func (p *Printer) Errorf(format string, args ...any) {
	msg := "Error: " + fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, p.failure.Render(msg))
}
