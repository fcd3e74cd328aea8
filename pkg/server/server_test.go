package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestServer(t *testing.T, in io.Reader, out io.Writer) *Server {
	t.Helper()
	dict := dictionary.New([]string{"act", "at", "ate", "cat", "eat", "eta", "sea", "tac", "tae", "tea"})
	s := solver.New(dict, solver.WithWorkers(2))
	return NewServer(s, DictInfo{Path: "test.txt", Format: "Plain Text Dictionary", Words: dict.Len()}, in, out)
}

func encodeFrames(t *testing.T, frames ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, f := range frames {
		require.NoError(t, enc.Encode(f))
	}
	return &buf
}

func decodeFrames(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	var frames []map[string]any
	for {
		var frame map[string]any
		err := dec.Decode(&frame)
		if errors.Is(err, io.EOF) {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, frame)
	}
}

func run(t *testing.T, frames ...any) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	srv := newTestServer(t, encodeFrames(t, frames...), &out)
	require.NoError(t, srv.Start(context.Background()))
	return decodeFrames(t, out.Bytes())
}

func toStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(string))
	}
	return out
}

func TestSolveRequest(t *testing.T) {
	resp := run(t, SolveRequest{ID: "r1", Letters: "tea"})
	require.Len(t, resp, 1)

	assert.Equal(t, "r1", resp[0]["id"])
	assert.Equal(t, []string{"at", "ate", "eat", "eta", "tae", "tea"}, toStrings(resp[0]["w"]))
	assert.EqualValues(t, 6, resp[0]["c"])
	assert.EqualValues(t, 12, resp[0]["n"])
	assert.Contains(t, resp[0], "t")
}

func TestSolveRequestMinLen(t *testing.T) {
	resp := run(t, map[string]any{"id": "r2", "q": "tea", "m": 3})
	require.Len(t, resp, 1)
	assert.Equal(t, []string{"ate", "eat", "eta", "tae", "tea"}, toStrings(resp[0]["w"]))
	assert.EqualValues(t, 5, resp[0]["c"])
}

func TestSolveRequestNoHitsIsEmptyArray(t *testing.T) {
	resp := run(t, SolveRequest{ID: "r3", Letters: "xyz"})
	require.Len(t, resp, 1)
	words, ok := resp[0]["w"].([]any)
	require.True(t, ok, "w must be an array, got %T", resp[0]["w"])
	assert.Empty(t, words)
	assert.EqualValues(t, 0, resp[0]["c"])
}

func TestMissingIDGetsUUID(t *testing.T) {
	resp := run(t, SolveRequest{Letters: "Cat"})
	require.Len(t, resp, 1)

	id, _ := resp[0]["id"].(string)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "id %q", id)
	assert.Equal(t, []string{"act", "at", "cat", "tac"}, toStrings(resp[0]["w"]))
}

func TestErrorResponses(t *testing.T) {
	resp := run(t,
		SolveRequest{ID: "bad", Letters: "ab1"},
		SolveRequest{ID: "short", Letters: "ab"},
		map[string]any{"id": "noq"},
		DictionaryRequest{ID: "act", Action: "set_size"},
		"not a map",
		SolveRequest{ID: "after", Letters: "cat"},
	)
	require.Len(t, resp, 6)

	for i, id := range []string{"bad", "short", "noq", "act", ""} {
		assert.Equal(t, id, resp[i]["id"])
		assert.EqualValues(t, CodeBadRequest, resp[i]["c"], "frame %d", i)
		assert.NotEmpty(t, resp[i]["e"], "frame %d", i)
	}
	assert.Equal(t, "after", resp[5]["id"], "server keeps going after bad requests")
	assert.Equal(t, []string{"act", "at", "cat", "tac"}, toStrings(resp[5]["w"]))
}

func TestGetInfo(t *testing.T) {
	resp := run(t, DictionaryRequest{ID: "d1", Action: "get_info"})
	require.Len(t, resp, 1)
	assert.Equal(t, "d1", resp[0]["id"])
	assert.Equal(t, "ok", resp[0]["status"])
	assert.Equal(t, "test.txt", resp[0]["path"])
	assert.EqualValues(t, 10, resp[0]["words"])
}

func TestEmptyInput(t *testing.T) {
	var out bytes.Buffer
	srv := newTestServer(t, bytes.NewReader(nil), &out)
	assert.NoError(t, srv.Start(context.Background()))
	assert.Zero(t, out.Len())
}

func TestTruncatedFrame(t *testing.T) {
	buf := encodeFrames(t, SolveRequest{ID: "ok", Letters: "cat"}, SolveRequest{ID: "cut", Letters: "tea"})
	data := buf.Bytes()[:buf.Len()-2]

	var out bytes.Buffer
	srv := newTestServer(t, bytes.NewReader(data), &out)
	err := srv.Start(context.Background())
	assert.Error(t, err)

	resp := decodeFrames(t, out.Bytes())
	require.Len(t, resp, 2)
	assert.Equal(t, "ok", resp[0]["id"])
	assert.EqualValues(t, CodeBadRequest, resp[1]["c"])
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	srv := newTestServer(t, encodeFrames(t, SolveRequest{ID: "x", Letters: "cat"}), &out)
	assert.ErrorIs(t, srv.Start(ctx), context.Canceled)
	assert.Zero(t, out.Len())
}

func TestFilterMinLen(t *testing.T) {
	assert.Equal(t, []string{"ate", "seat"}, filterMinLen([]string{"at", "ate", "seat"}, 3))
	assert.Empty(t, filterMinLen(nil, 3))
}
