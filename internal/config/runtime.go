package config

import (
	"os"
	"path/filepath"
	"strconv"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("TUSK_RUNTIME_PATH"))
}

// resolveRuntimePath anchors relative paths in the user's home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".tuskchat"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

// IsDebug reports whether TUSK_DEBUG is set to a true value ("1", "true").
func IsDebug() bool {
	v, err := strconv.ParseBool(os.Getenv("TUSK_DEBUG"))
	return err == nil && v
}
