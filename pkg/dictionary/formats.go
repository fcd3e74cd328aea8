package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // Plain text, one word per line
	FormatChunk              // Chunked binary, a single file or a dir of dict_NNNN.bin
	FormatMsgpack            // msgpack array of strings
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

// chunkPattern matches the files of a chunk directory.
const chunkPattern = "dict_*.bin"

// maxChunkWords is a sanity bound on a chunk header.
const maxChunkWords = 1_000_000

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ".dic", ".lst", ""},
		MinSize:     0,
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // At least word count header
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack Dictionary",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1, // At least an array header
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if fileInfo.IsDir() {
		if expectedFormat != FormatChunk {
			return fmt.Errorf("%s is a directory, only chunk dictionaries can be directories", filename)
		}
		matches, err := filepath.Glob(filepath.Join(filename, chunkPattern))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no %s files found in %s", chunkPattern, filename)
		}
		return nil
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

// validateChunkHeader checks the word count header of a chunk file
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat works out which format path holds, by extension for
// files and by the presence of chunk files for directories.
func DetectFileFormat(path string) (FileFormat, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, err
	}

	if stat.IsDir() {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return FormatChunk, nil
	}

	for _, format := range []FileFormat{FormatChunk, FormatMsgpack, FormatText} {
		if err := ValidateFileFormat(path, format); err == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnknownFormat, path)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
