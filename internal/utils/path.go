package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName is used for the per-user config directory.
const AppName = "wordsolve"

// PathResolver finds the dictionary and config files relative to the places
// a user is likely to keep them: next to the binary, the working directory
// and the per-user config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the per-user config directory for the current OS.
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// Candidates lists the locations tried for a relative path, in order:
// as given (absolute paths stop here), the working directory, the
// executable directory and the config directory.
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.configDir, path),
	)
}

// ResolveDictPath returns the first existing candidate for a dictionary
// file or chunk directory. If none exists the first candidate is returned
// so the caller reports a meaningful "not found" error.
func (pr *PathResolver) ResolveDictPath(path string) string {
	candidates := pr.Candidates(path)
	for _, candidate := range candidates {
		if FileExists(candidate) {
			log.Debugf("Found dictionary at: %s", candidate)
			return candidate
		}
		log.Debugf("Dictionary candidate not found: %s", candidate)
	}
	return candidates[0]
}

// GetConfigPath returns the full path for a config file, falling back to a
// temp location when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) string {
	if CheckDirStatus(pr.configDir).Writable {
		return filepath.Join(pr.configDir, filename)
	}
	fallback := filepath.Join(os.TempDir(), AppName)
	if CheckDirStatus(fallback).Writable {
		path := filepath.Join(fallback, filename)
		log.Warnf("Using fallback config location: %s", path)
		return path
	}
	return filepath.Join(os.TempDir(), filename)
}
