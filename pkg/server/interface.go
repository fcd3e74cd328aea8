/*
Package server implements msgpack IPC for the anagram solver.

Clients write msgpack maps to stdin and read one msgpack map per request
from stdout. Frames are handled one at a time, in order.

# IPC

A solve request carries the letters and, optionally, a minimum word length:

	{"id": "req_001", "q": "tea", "m": 3}

The response lists every dictionary word spelled from a subset of the
letters, sorted, with the pool size and the time taken in microseconds:

	{"id": "req_001", "w": ["ate", "eat", "eta", "tae", "tea"], "c": 5, "n": 12, "t": 212}

Invalid letters produce an error frame with code 400; anything else that
goes wrong is a 500:

	{"id": "req_002", "e": "invalid letter sequence: ...", "c": 400}

Dictionary information is requested with an action:

	{"id": "dict_001", "action": "get_info"}

A request without an id is given a generated UUID, echoed in the response.
*/
package server

// SolveRequest asks for every word spelled by a subset of Letters.
type SolveRequest struct {
	ID      string `msgpack:"id"`
	Letters string `msgpack:"q"`
	MinLen  int    `msgpack:"m,omitempty"`
}

// SolveResponse - solve result
type SolveResponse struct {
	ID         string   `msgpack:"id"`
	Words      []string `msgpack:"w"`
	Count      int      `msgpack:"c"`
	Candidates uint64   `msgpack:"n"`
	TimeTaken  int64    `msgpack:"t"`
}

// SolveError holds basic error information for any failed request
type SolveError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// DictionaryRequest - dictionary info request
type DictionaryRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "get_info"
}

// DictionaryResponse - dictionary info response
type DictionaryResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Path   string `msgpack:"path,omitempty"`
	Format string `msgpack:"format,omitempty"`
	Words  int    `msgpack:"words"`
}

// DictInfo describes the loaded dictionary for get_info.
type DictInfo struct {
	Path   string
	Format string
	Words  int
}

// Error codes used in SolveError.Code.
const (
	CodeBadRequest = 400
	CodeInternal   = 500
)
