package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for solve requests
type Server struct {
	solver  *solver.Solver
	info    DictInfo
	dec     *msgpack.Decoder
	out     *bufio.Writer
	enc     *msgpack.Encoder
	log     *log.Logger
	handled int
}

// NewServer creates a server reading frames from r and writing them to w.
// The binary passes stdin and stdout.
func NewServer(s *solver.Solver, info DictInfo, r io.Reader, w io.Writer) *Server {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	dec.UseLooseInterfaceDecoding(true)
	out := bufio.NewWriter(w)
	return &Server{
		solver: s,
		info:   info,
		dec:    dec,
		out:    out,
		enc:    msgpack.NewEncoder(out),
		log:    logger.New("ipc"),
	}
}

// Start reads and answers requests until the input ends or ctx is done.
// A clean end of input returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting msgpack server", "dict", s.info.Path, "words", s.info.Words, "workers", s.solver.Workers())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var frame any
		if err := s.dec.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "handled", s.handled)
				return nil
			}
			// the stream cannot be resynchronised after a broken frame
			s.sendError("", fmt.Sprintf("malformed msgpack frame: %v", err), CodeBadRequest)
			return fmt.Errorf("decode request: %w", err)
		}

		s.handled++
		s.handleFrame(ctx, frame)
	}
}

// handleFrame dispatches one decoded frame to the solve or dictionary handler.
func (s *Server) handleFrame(ctx context.Context, frame any) {
	fields, ok := frame.(map[string]any)
	if !ok {
		s.sendError("", fmt.Sprintf("request must be a map, got %T", frame), CodeBadRequest)
		return
	}

	id, _ := utils.ExtractString(fields, "id")
	if id == "" {
		id = uuid.NewString()
	}

	if action, ok := utils.ExtractString(fields, "action"); ok {
		s.handleDictionary(DictionaryRequest{ID: id, Action: action})
		return
	}

	letters, ok := utils.ExtractString(fields, "q")
	if !ok {
		s.sendError(id, "missing 'q' parameter", CodeBadRequest)
		return
	}
	minLen, _ := extractInt(fields, "m")
	s.handleSolve(ctx, SolveRequest{ID: id, Letters: letters, MinLen: minLen})
}

func (s *Server) handleSolve(ctx context.Context, req SolveRequest) {
	start := time.Now()
	result, err := s.solver.Solve(ctx, req.Letters)
	if err != nil {
		code := CodeInternal
		if errors.Is(err, solver.ErrInvalidSequence) {
			code = CodeBadRequest
		}
		s.log.Debug("Solve failed", "id", req.ID, "letters", req.Letters, "err", err)
		s.sendError(req.ID, err.Error(), code)
		return
	}

	words := result.Words
	if req.MinLen > 0 {
		words = filterMinLen(words, req.MinLen)
	}
	if words == nil {
		words = []string{}
	}

	s.log.Debug("Solved", "id", req.ID, "letters", result.Letters, "found", len(words), "mode", result.Mode)
	s.send(SolveResponse{
		ID:         req.ID,
		Words:      words,
		Count:      len(words),
		Candidates: result.Candidates,
		TimeTaken:  time.Since(start).Microseconds(),
	})
}

func (s *Server) handleDictionary(req DictionaryRequest) {
	switch req.Action {
	case "get_info":
		s.send(DictionaryResponse{
			ID:     req.ID,
			Status: "ok",
			Path:   s.info.Path,
			Format: s.info.Format,
			Words:  s.info.Words,
		})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), CodeBadRequest)
	}
}

func (s *Server) send(v any) {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(SolveError{ID: id, Error: message, Code: code})
}

// filterMinLen keeps words of at least n letters, preserving order.
func filterMinLen(words []string, n int) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= n {
			kept = append(kept, w)
		}
	}
	return kept
}

// extractInt reads an integer field decoded in loose mode, where signed
// values arrive as int64 and unsigned ones as uint64.
func extractInt(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	}
	return 0, false
}
