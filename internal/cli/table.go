package cli

import (
	"fmt"
	"regexp"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/internal/shm"
	"github.com/calvinalkan/denv/pkg/denv"
)

// Shared-memory and semaphore project bytes for the (path, project-byte)
// key derivation in internal/shm.Key. The semaphore gets a distinct byte
// so it never collides with the data segment's IPC key even though both
// are keyed off the same backing path.
const (
	segmentProject byte = 'D'
	mutexProject   byte = 'M'
)

// openTable attaches the shared segment and semaphore identified by
// cfg.Path, creating and initializing both on first attach.
func openTable(cfg config.Config) (*denv.Table, error) {
	seg, err := shm.OpenSegment(cfg.Path, segmentProject, denv.TableSize())
	if err != nil {
		return nil, fmt.Errorf("denv: attach segment: %w", err)
	}

	mu, err := shm.OpenMutex(cfg.Path, mutexProject)
	if err != nil {
		return nil, fmt.Errorf("denv: attach semaphore: %w", err)
	}

	t, err := denv.Open(seg, mu)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// envNameRe validates names passed with `-e`/`set -e`: they must be legal
// shell environment variable names.
var envNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validEnvName(name string) bool {
	return envNameRe.MatchString(name)
}
