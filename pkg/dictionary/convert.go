package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteMsgpack encodes the word list as a single msgpack array.
func WriteMsgpack(w io.Writer, d *Dictionary) error {
	bw := bufio.NewWriter(w)
	if err := msgpack.NewEncoder(bw).Encode(d.words); err != nil {
		return fmt.Errorf("encode msgpack word list: %w", err)
	}
	return bw.Flush()
}

// WriteText writes one word per line.
func WriteText(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteChunk encodes words in the chunk layout read by Load. Ranks follow
// the order of words, starting at 1.
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > maxChunkWords {
		return fmt.Errorf("chunk of %d words exceeds the %d word limit", len(words), maxChunkWords)
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	ranks := utils.CreateRankList(len(words))
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word %d is too long for the chunk format", i)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, ranks[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes d to path, choosing the format from the extension the same
// way Load detects it. Directories are written as chunkSize-word chunk files.
func Save(d *Dictionary, path string, chunkSize int) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".msgpack", ".mpk":
		return writeFile(path, func(w io.Writer) error { return WriteMsgpack(w, d) })
	case ".bin":
		return writeFile(path, func(w io.Writer) error { return WriteChunk(w, d.words) })
	case ".txt", ".dic", ".lst":
		return writeFile(path, func(w io.Writer) error { return WriteText(w, d.words) })
	case "":
		return saveChunkDir(d, path, chunkSize)
	}
	return fmt.Errorf("%w: cannot save to %s", ErrUnknownFormat, path)
}

func saveChunkDir(d *Dictionary, dir string, chunkSize int) error {
	if chunkSize < 1 {
		chunkSize = 10000
	}
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	for id, start := 1, 0; start < len(d.words); id, start = id+1, start+chunkSize {
		part := d.words[start:min(start+chunkSize, len(d.words))]
		name := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", id))
		if err := writeFile(name, func(w io.Writer) error { return WriteChunk(w, part) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
