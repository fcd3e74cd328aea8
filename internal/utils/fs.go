package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult represents the result of dir checks
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data as TOML into filePath. The file is written to a
// sibling temp file first and renamed into place, so a failed encode never
// leaves a truncated config behind.
func SaveTOMLFile(data any, filePath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".wordsolve-*.toml")
	if err != nil {
		log.Errorf("Failed to create temp file for %s: %v", filePath, err)
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filePath)
}

// GetAbsolutePath returns the absolute path of a file
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetExecutableDir returns the directory of the current executable,
// symlinks resolved when possible.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus tests if a directory exists (creating it if needed) and is writable.
func CheckDirStatus(dirPath string) DirCheckResult {
	result := DirCheckResult{}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		result.Error = err
		log.Debugf("Cannot create directory %s: %v", dirPath, err)
		return result
	}
	result.Exists = true

	probe, err := os.CreateTemp(dirPath, ".write_test")
	if err != nil {
		log.Debugf("Directory %s is not writable: %v", dirPath, err)
		return result
	}
	probe.Close()
	os.Remove(probe.Name())
	result.Writable = true
	return result
}
