// SPDX-License-Identifier: MIT

// Package prompt reads validated numbers from a line-oriented interactive stream.
//
// Input is a sequence of whitespace-separated tokens. Tokens left on a line
// feed the next request, so "2 3" on one line and "2" then "3" on two lines
// are equivalent. A rejected token discards the rest of its line before the
// retry prompt is shown.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the input ends while a value is still awaited.
var ErrInputClosed = errors.New("prompt: input closed")

// ErrRead wraps a failure of the underlying reader other than end of input.
var ErrRead = errors.New("prompt: read failed")

// Prompt texts. Element coordinates are 1-based.
const (
	DimensionPrompt = "Enter rows and columns of matrix %s (separated by a space): "
	DimensionRetry  = "Invalid input. Please enter two positive integers separated by a space: "
	ElementsHeader  = "Enter the elements of matrix %s (%d x %d):\n"
	ElementPrompt   = "  element (%d, %d): "
	ElementRetry    = "  Invalid input. Please enter a number: "
)

// Retry kinds reported to the RetryRecorder.
const (
	KindDimension = "dimension"
	KindElement   = "element"
)

// RetryRecorder observes rejected tokens.
type RetryRecorder interface {
	RecordRetry(kind string)
}

// state of one read request.
type state int

const (
	awaitingToken state = iota
	accepted
)

// Reader hands out validated dimensions and elements.
type Reader struct {
	in      *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
	retries RetryRecorder
	pending []string // unread tokens of the current line
	eof     bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger for rejected tokens (debug level).
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithRetryRecorder counts rejected tokens.
func WithRetryRecorder(rr RetryRecorder) Option {
	return func(r *Reader) { r.retries = rr }
}

// NewReader reads tokens from in and writes prompts to out.
// Lines have no length limit.
func NewReader(in io.Reader, out io.Writer, opts ...Option) *Reader {
	r := &Reader{
		in:     bufio.NewReader(in),
		out:    out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range opts {
		set(r)
	}

	return r
}

// Dimensions prompts for the shape of the named matrix and returns two
// positive integers. Malformed or non-positive input is rejected and the
// retry prompt repeats until a valid pair arrives.
func (r *Reader) Dimensions(name string) (rows, cols int, err error) {
	fmt.Fprintf(r.out, DimensionPrompt, name)

	st := awaitingToken
	for st == awaitingToken {
		var first, second string
		var okRows, okCols bool
		if first, err = r.next(); err != nil {
			return 0, 0, err
		}
		// A bad first token rejects the line without consuming a second one.
		if rows, okRows = parsePositive(first); okRows {
			if second, err = r.next(); err != nil {
				return 0, 0, err
			}
			cols, okCols = parsePositive(second)
		}
		if okRows && okCols {
			st = accepted
			continue
		}

		r.reject(KindDimension, strings.TrimSpace(first+" "+second))
		fmt.Fprint(r.out, DimensionRetry)
	}
	r.logger.Debug("dimensions accepted", "matrix", name, "rows", rows, "cols", cols)

	return rows, cols, nil
}

// Elements prompts for rows*cols values in row-major order and passes each
// accepted value to set. Coordinates given to set are 0-based.
func (r *Reader) Elements(name string, rows, cols int, set func(i, j int, v float64) error) error {
	fmt.Fprintf(r.out, ElementsHeader, name, rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			fmt.Fprintf(r.out, ElementPrompt, i+1, j+1)
			v, err := r.element()
			if err != nil {
				return err
			}
			if err = set(i, j, v); err != nil {
				return fmt.Errorf("prompt: store %s(%d,%d): %w", name, i, j, err)
			}
		}
	}

	return nil
}

// element runs the retry loop for a single float64.
func (r *Reader) element() (v float64, err error) {
	st := awaitingToken
	for st == awaitingToken {
		var tok string
		if tok, err = r.next(); err != nil {
			return 0, err
		}
		if v, err = parseElement(tok); err == nil {
			st = accepted
			continue
		}
		r.reject(KindElement, tok)
		fmt.Fprint(r.out, ElementRetry)
	}

	return v, nil
}

// next returns the next token, reading lines as needed.
// A final line without a trailing newline still yields its tokens.
func (r *Reader) next() (string, error) {
	for len(r.pending) == 0 {
		if r.eof {
			return "", ErrInputClosed
		}
		line, err := r.in.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %w", ErrRead, err)
			}
			r.eof = true
		}
		r.pending = strings.Fields(line)
	}
	tok := r.pending[0]
	r.pending = r.pending[1:]

	return tok, nil
}

// reject discards the rest of the current line and records the retry.
func (r *Reader) reject(kind, token string) {
	r.pending = nil
	r.logger.Debug("input rejected", "kind", kind, "token", token)
	if r.retries != nil {
		r.retries.RecordRetry(kind)
	}
}

// parseElement accepts strconv.ParseFloat syntax. Magnitudes beyond float64
// range become ±Inf instead of being rejected.
func parseElement(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0) {
		return v, nil
	}

	return v, err
}

// parsePositive accepts base-10 integers greater than zero.
func parsePositive(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
