package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/vuegen/pkg/errors"
)

// Environment variable names
const (
	EnvWorkspace = "VUEGEN_WORKSPACE"
	EnvCacheDir  = "VUEGEN_CACHE_DIR"
	EnvConfigDir = "VUEGEN_CONFIG_DIR"
	EnvHome      = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "vuegen"

	// LogFileName is the name of the log file in the state directory
	LogFileName = "vuegen.log"

	// BuiltinPluginPrefix marks plugin ids that live in the built-in library
	BuiltinPluginPrefix = "vuengine//"

	// UserPluginPrefix marks plugin ids that live in the user library
	UserPluginPrefix = "user//"
)

// ConfigDir returns the user configuration directory for vuegen
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// CacheDir returns the cache directory for vuegen
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// StateDir returns the state directory for vuegen
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the vuegen log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// FindWorkspaceRoot determines the workspace root using, in order:
//  1. the VUEGEN_WORKSPACE environment variable
//  2. the enclosing git repository root
//  3. the current working directory
func FindWorkspaceRoot() (string, error) {
	if root := os.Getenv(EnvWorkspace); root != "" {
		return filepath.Abs(ExpandHome(root))
	}

	if gitRoot, err := findGitRoot(); err == nil {
		return gitRoot, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, nil
}

func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// Normalize expands ~ and makes path absolute. Empty paths stay empty.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}
