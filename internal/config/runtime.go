package config

import (
	"os"
	"path/filepath"
)

// Read straight from the environment: logging starts before any .env file
// is loaded.

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("MEMCHAT_RUNTIME_PATH"))
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

func GetLogPath() string {
	return filepath.Join(GetRuntimePath(), logFile)
}

func IsDebug() bool {
	return os.Getenv("MEMCHAT_DEBUG") == "1"
}

const logFile = "memchat.log"

// relative paths live under the home directory
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".memchat"
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
