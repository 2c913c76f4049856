// Package config resolves the single configuration value denv's CLI needs:
// the backing path for the shared segment and semaphore.
package config

import (
	"errors"
	"path/filepath"
)

// ErrNoHome is returned when no -b override was given and HOME is unset or
// empty, so the default path cannot be resolved.
var ErrNoHome = errors.New("config: HOME is not set and no -b PATH was given")

// Config is the resolved configuration for a single invocation of the CLI.
type Config struct {
	// Path is the backing file whose (path, project-byte) pair derives the
	// shared-memory segment and semaphore IPC keys (see internal/shm.Key).
	Path string
}

// defaultRelPath is appended to HOME when -b is not given.
const defaultRelPath = ".local/share/denv"

// Load resolves Config from the -b flag override (pathOverride, empty if
// not given) and the process environment. Precedence, highest wins:
//  1. pathOverride (the `-b PATH` flag)
//  2. $HOME/.local/share/denv
//
// Callers pass the bits that came from flag parsing and the environment
// explicitly, rather than this package reaching into os.Getenv/os.Args
// itself, so it stays testable without process-global state.
func Load(pathOverride string, env map[string]string) (Config, error) {
	if pathOverride != "" {
		return Config{Path: pathOverride}, nil
	}

	home := env["HOME"]
	if home == "" {
		return Config{}, ErrNoHome
	}

	return Config{Path: filepath.Join(home, defaultRelPath)}, nil
}
