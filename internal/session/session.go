// SPDX-License-Identifier: MIT

// Package session runs one interactive multiplication:
// read the shapes of A and B, reject incompatible shapes before allocating,
// read the elements, compute C = A × B and print all three matrices.
//
// Every matrix obtained from the Allocator is released by a deferred call
// registered right after the allocation, so each exit path leaves
// Allocations() == Releases().
package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/matprod/internal/observability"
	"github.com/katalvlaran/matprod/internal/prompt"
	"github.com/katalvlaran/matprod/internal/report"
	"github.com/katalvlaran/matprod/matrix"
)

// ErrIncompatible is returned when cols(A) != rows(B).
var ErrIncompatible = fmt.Errorf("session: incompatible operands: %w", matrix.ErrDimensionMismatch)

// Messages printed to the session writer.
const (
	incompatibleMsg = "the number of columns of A (%d) must equal the number of rows of B (%d)."
	allocationMsg   = "memory allocation failed."
)

// counted is implemented by allocators that keep allocate/release counts.
type counted interface {
	Allocations() int
	Releases() int
}

// Session holds the collaborators of one run.
type Session struct {
	in         io.Reader
	out        io.Writer
	logger     *slog.Logger
	alloc      matrix.Allocator
	metrics    *observability.Metrics
	reportOpts []report.Option
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithAllocator replaces the default TrackingAllocator.
func WithAllocator(a matrix.Allocator) Option {
	return func(s *Session) { s.alloc = a }
}

// WithMetrics reports retries and multiplications to m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithReportOptions forwards layout options to the report printer.
func WithReportOptions(opts ...report.Option) Option {
	return func(s *Session) { s.reportOpts = append(s.reportOpts, opts...) }
}

// New returns a Session reading from in and writing prompts and results to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:     in,
		out:    out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range opts {
		set(s)
	}
	if s.alloc == nil {
		s.alloc = matrix.NewTrackingAllocator()
	}

	return s
}

// Run executes one session.
//
// Implementation:
//   - Stage 1: read shapes of A and B; mismatch returns ErrIncompatible.
//   - Stage 2: allocate A, B, C; each success defers its release.
//   - Stage 3: read elements of A then B.
//   - Stage 4: C = A × B via the unchecked kernel (shapes already proven).
//   - Stage 5: print A, B, C.
//
// Errors:
//   - ErrIncompatible, matrix.ErrAllocation, prompt.ErrInputClosed, write errors.
func (s *Session) Run() error {
	printer := report.New(s.out, s.reportOpts...)
	popts := []prompt.Option{prompt.WithLogger(s.logger)}
	if s.metrics != nil {
		popts = append(popts, prompt.WithRetryRecorder(s.metrics))
	}
	rd := prompt.NewReader(s.in, s.out, popts...)

	defer s.logSummary()

	// Stage 1: shapes.
	r1, c1, err := rd.Dimensions("A")
	if err != nil {
		return err
	}
	r2, c2, err := rd.Dimensions("B")
	if err != nil {
		return err
	}
	if c1 != r2 {
		printer.Errorf(incompatibleMsg, c1, r2)
		s.logger.Warn("incompatible dimensions", "a_rows", r1, "a_cols", c1, "b_rows", r2, "b_cols", c2)
		return fmt.Errorf("A is %dx%d, B is %dx%d: %w", r1, c1, r2, c2, ErrIncompatible)
	}

	// Stage 2: buffers. User input may legitimately contain NaN/Inf.
	a, err := s.allocate(printer, "A", r1, c1)
	if err != nil {
		return err
	}
	defer s.alloc.Release(a)
	b, err := s.allocate(printer, "B", r2, c2)
	if err != nil {
		return err
	}
	defer s.alloc.Release(b)
	c, err := s.allocate(printer, "C", r1, c2)
	if err != nil {
		return err
	}
	defer s.alloc.Release(c)

	// Stage 3: elements.
	if err = rd.Elements("A", r1, c1, a.Set); err != nil {
		return err
	}
	if err = rd.Elements("B", r2, c2, b.Set); err != nil {
		return err
	}

	// Stage 4: product.
	matrix.MulInto(a, b, c)
	if s.metrics != nil {
		s.metrics.RecordMultiplication()
	}
	s.logger.Info("product computed", "rows", r1, "inner", c1, "cols", c2)

	// Stage 5: report.
	for _, sec := range []struct {
		name string
		m    *matrix.Dense
	}{
		{report.SectionA, a},
		{report.SectionB, b},
		{report.SectionC, c},
	} {
		if err = printer.Print(sec.name, sec.m); err != nil {
			return err
		}
	}

	return nil
}

// allocate wraps Allocate with the user-facing failure message.
func (s *Session) allocate(p *report.Printer, name string, rows, cols int) (*matrix.Dense, error) {
	m, err := s.alloc.Allocate(rows, cols, matrix.WithNoValidateNaNInf())
	if err != nil {
		p.Errorf(allocationMsg)
		s.logger.Error("allocation failed", "matrix", name, "rows", rows, "cols", cols, "error", err)
		return nil, fmt.Errorf("session: allocate %s: %w", name, err)
	}

	return m, nil
}

func (s *Session) logSummary() {
	if c, ok := s.alloc.(counted); ok {
		s.logger.Debug("session finished", "allocations", c.Allocations(), "releases", c.Releases())
	}
}
