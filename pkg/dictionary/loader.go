package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

// LoadOptions controls which entries survive loading.
type LoadOptions struct {
	// MinWordLen drops words shorter than this. Zero keeps everything.
	MinWordLen int
	// AllowEmpty accepts a source with no usable words instead of
	// returning ErrEmptyDictionary.
	AllowEmpty bool
}

// keep reports whether a normalised entry is usable: a-z only and long enough.
func (o LoadOptions) keep(word string) bool {
	return len(word) >= o.MinWordLen && utils.IsLowerWord(word)
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// Load reads the dictionary at path in whatever format it is stored.
func Load(path string, opts LoadOptions) (*Dictionary, error) {
	start := time.Now()
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}

	var words []string
	switch format {
	case FormatText:
		words, err = readTextFile(path, opts)
	case FormatChunk:
		words, err = readChunks(path, opts)
	case FormatMsgpack:
		words, err = readMsgpackFile(path, opts)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}

	d := fromSorted(words)
	if d.Len() == 0 && !opts.AllowEmpty {
		return nil, fmt.Errorf("load dictionary %s: %w", path, ErrEmptyDictionary)
	}
	log.Debug("dictionary loaded", "path", path, "format", format, "words", d.Len(), "took", time.Since(start))
	return d, nil
}

// ReadText builds a Dictionary from one-word-per-line text.
func ReadText(r io.Reader, opts LoadOptions) (*Dictionary, error) {
	words, err := scanWords(r, opts)
	if err != nil {
		return nil, err
	}
	d := fromSorted(words)
	if d.Len() == 0 && !opts.AllowEmpty {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

func readTextFile(path string, opts LoadOptions) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return scanWords(file, opts)
}

// maxLineBytes bounds a text line. Longer lines cannot hold a usable word
// and are skipped rather than failing the load.
const maxLineBytes = 64 * 1024

func scanWords(r io.Reader, opts LoadOptions) ([]string, error) {
	var words []string
	skipped, tooLong := 0, 0
	br := bufio.NewReaderSize(r, maxLineBytes)
	for {
		line, isPrefix, err := br.ReadLine()
		for isPrefix && err == nil {
			// drain the rest of an overlong line
			_, isPrefix, err = br.ReadLine()
			if !isPrefix && err == nil {
				tooLong++
				line = nil
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word list: %w", err)
		}

		word := strings.ToLower(strings.TrimSpace(string(line)))
		if word == "" {
			continue
		}
		if !opts.keep(word) {
			skipped++
			continue
		}
		words = append(words, word)
	}
	if tooLong > 0 {
		log.Warnf("Skipped %d lines longer than %d bytes", tooLong, maxLineBytes)
	}
	if skipped > 0 {
		log.Debugf("Skipped %d entries that are too short or not plain a-z", skipped)
	}
	return words, nil
}

// GetAvailableChunks scans dir for chunk files, sorted by ID
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, chunkPattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("Ignoring chunk file with malformed name: %s", file)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// readChunks loads a single chunk file or every chunk of a directory. Chunk
// files are decoded concurrently; the words are merged afterwards.
func readChunks(path string, opts LoadOptions) ([]string, error) {
	if !utils.IsDir(path) {
		return readChunkFile(path, opts)
	}

	chunks, err := GetAvailableChunks(path)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", path)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	parts := make([][]string, len(chunks))
	var g errgroup.Group
	for i, chunk := range chunks {
		g.Go(func() error {
			words, err := readChunkFile(chunk.Filename, opts)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.ID, err)
			}
			parts[i] = words
			log.Debugf("Chunk %d loaded: %d words", chunk.ID, len(words))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	words := make([]string, 0, total)
	for _, p := range parts {
		words = append(words, p...)
	}
	return words, nil
}

func readChunkFile(filename string, opts LoadOptions) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()
	return decodeChunk(bufio.NewReader(file), opts)
}

// decodeChunk reads the chunk layout: an int32 entry count, then for each
// entry a uint16 length, the word bytes and a uint16 rank. Ranks order
// completions elsewhere and carry no meaning for membership, so they are
// skipped.
func decodeChunk(r io.Reader, opts LoadOptions) ([]string, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	words := make([]string, 0, totalEntries)
	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				log.Warnf("Chunk ended after %d of %d entries", i, totalEntries)
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}

		if word := strings.ToLower(string(wordBytes)); opts.keep(word) {
			words = append(words, word)
		}
	}
	return words, nil
}

func readMsgpackFile(path string, opts LoadOptions) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw []string
	if err := msgpack.NewDecoder(bufio.NewReader(file)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack word list: %w", err)
	}

	words := raw[:0]
	for _, w := range raw {
		if w = strings.ToLower(strings.TrimSpace(w)); opts.keep(w) {
			words = append(words, w)
		}
	}
	return words, nil
}
