// Package cli runs the interactive prompt: read letters, solve, print words.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
)

// Options controls how results are shown.
type Options struct {
	Columns int
	Color   bool
}

// InputHandler reads letter sequences line by line and prints the words
// each one spells.
type InputHandler struct {
	solver       *solver.Solver
	in           *bufio.Reader
	out          io.Writer
	columns      int
	styles       styles
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(s *solver.Solver, in io.Reader, out io.Writer, opts Options) *InputHandler {
	return &InputHandler{
		solver:  s,
		in:      bufio.NewReader(in),
		out:     out,
		columns: max(opts.Columns, 1),
		styles:  newStyles(opts.Color),
	}
}

// Start begins the interface loop.
// It prompts, reads a line and hands it to handleInput until the input
// ends, which returns nil, or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	minLen, maxLen := h.solver.SequenceBounds()
	prompt := h.styles.prompt.Render(fmt.Sprintf("Enter a sequence of letters (%d to %d letters): ", minLen, maxLen))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(h.out, prompt)

		line, err := h.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		if line = strings.TrimSpace(line); line != "" {
			if herr := h.handleInput(ctx, line); herr != nil {
				return herr
			}
		}
		if eof {
			fmt.Fprintln(h.out)
			log.Debug("Input closed", "requests", h.requestCount)
			return nil
		}
	}
}

// handleInput solves one line. Invalid sequences are reported and the
// loop continues; any other failure ends it.
func (h *InputHandler) handleInput(ctx context.Context, line string) error {
	h.requestCount++
	log.Debug("Processing request", "input", line)

	result, err := h.solver.Solve(ctx, line)
	if errors.Is(err, solver.ErrInvalidSequence) {
		minLen, maxLen := h.solver.SequenceBounds()
		log.Debugf("Rejected %q: %v", line, err)
		fmt.Fprintln(h.out, h.styles.warn.Render(
			fmt.Sprintf("<< Please enter a sequence of %d to %d letters >>", minLen, maxLen)))
		return nil
	}
	if err != nil {
		return err
	}

	log.Debugf("Took [ %v ] for %q, %d candidates in %s mode", result.Elapsed, result.Letters, result.Candidates, result.Mode)
	return renderResult(h.out, result, h.columns, h.styles)
}
