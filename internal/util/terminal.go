package util

import (
	"os"
	"path/filepath"

	"golang.org/x/term"
)

// DefaultStoreName is the file name of the store under the user's home
const DefaultStoreName = ".tntisdead.db"

// IsTerminal checks if the given file descriptor is a terminal
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// DefaultStorePath returns the per-user store location ($HOME/.tntisdead.db).
// Falls back to the working directory when no home directory is known.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultStoreName
	}
	return filepath.Join(home, DefaultStoreName)
}
