package shm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Segment is a System V shared-memory attachment. It satisfies denv.Segment
// (Bytes() []byte) structurally, without importing pkg/denv.
type Segment struct {
	id   int
	data []byte
}

// OpenSegment attaches the shared-memory segment identified by (path,
// project), creating it with permissions 0644 if this is the first
// attach. size is the exact byte length the segment must have; pass
// [denv.TableSize]().
func OpenSegment(path string, project byte, size int) (*Segment, error) {
	if err := EnsureBackingFile(path); err != nil {
		return nil, err
	}

	key, err := Key(path, project)
	if err != nil {
		return nil, err
	}

	id, err := unix.SysvShmGet(key, size, unix.IPC_CREAT|0o644)
	if err != nil {
		return nil, fmt.Errorf("shm: shmget: %w", err)
	}

	data, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: shmat: %w", err)
	}

	if len(data) < size {
		return nil, fmt.Errorf("shm: attached segment smaller than requested: got %d, want %d", len(data), size)
	}

	return &Segment{id: id, data: data[:size]}, nil
}

// Bytes returns the attached region.
func (s *Segment) Bytes() []byte {
	return s.data
}

// Detach unmaps the segment from this process's address space. The
// segment itself (and any other processes attached to it) is unaffected.
func (s *Segment) Detach() error {
	if err := unix.SysvShmDetach(s.data); err != nil {
		return fmt.Errorf("shm: shmdt: %w", err)
	}

	return nil
}

// Drop destroys the shared-memory segment outright, for the `drop` CLI
// command. Safe to call even while other processes are still attached:
// under System V semantics, the segment is marked for destruction and
// actually freed once the last process detaches.
func (s *Segment) Drop() error {
	var desc unix.SysvShmDesc

	if _, err := unix.SysvShmCtl(s.id, unix.IPC_RMID, &desc); err != nil {
		return fmt.Errorf("shm: shmctl IPC_RMID: %w", err)
	}

	return nil
}
