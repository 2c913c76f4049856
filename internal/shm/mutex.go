package shm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// semSETVAL is the semctl command that sets the semaphore's value. To avoid
// racing other first-attachers, SETVAL is applied
// only by whoever actually created the semaphore set (IPC_CREAT|IPC_EXCL
// succeeded), never by an attacher that merely opened an existing one.
const semSETVAL = 16 // unix.SETVAL isn't always exposed; value is POSIX-stable across Linux archs.

// Mutex is a System V binary semaphore: a single-member semaphore set,
// initial value 1, guarding an entire [denv.Table]. It satisfies
// denv.Mutex (Lock/Unlock) structurally.
type Mutex struct {
	id int
}

// OpenMutex attaches the semaphore set identified by (path, project),
// creating and initializing it to 1 if this is the first attach.
//
// The semaphore is keyed independently from the data segment (a
// different project byte), per the Design Notes' re-architecture of the
// "inter-process mutex embedded in a shared struct" into a standalone
// capability: every process that resolves the same path derives the
// same semaphore id without reading anything out of shared memory.
func OpenMutex(path string, project byte) (*Mutex, error) {
	if err := EnsureBackingFile(path); err != nil {
		return nil, err
	}

	key, err := Key(path, project)
	if err != nil {
		return nil, err
	}

	// Try to be the creator first so we know whether to SETVAL.
	id, createErr := unix.Semget(key, 1, unix.IPC_CREAT|unix.IPC_EXCL|0o644)
	if createErr == nil {
		if _, err := unix.Semctl(id, 0, semSETVAL, 1); err != nil {
			return nil, fmt.Errorf("shm: semctl SETVAL: %w", err)
		}

		return &Mutex{id: id}, nil
	}

	id, err = unix.Semget(key, 1, 0o644)
	if err != nil {
		return nil, fmt.Errorf("shm: semget: %w", err)
	}

	return &Mutex{id: id}, nil
}

// Lock decrements the semaphore, blocking while it is zero.
func (m *Mutex) Lock() error {
	op := []unix.Sembuf{{Semnum: 0, Semop: -1, Semflg: 0}}

	if err := unix.Semop(m.id, op); err != nil {
		return fmt.Errorf("shm: semop wait: %w", err)
	}

	return nil
}

// Unlock increments the semaphore.
func (m *Mutex) Unlock() error {
	op := []unix.Sembuf{{Semnum: 0, Semop: 1, Semflg: 0}}

	if err := unix.Semop(m.id, op); err != nil {
		return fmt.Errorf("shm: semop post: %w", err)
	}

	return nil
}

// Drop destroys the semaphore set outright, for the `drop` CLI command.
func (m *Mutex) Drop() error {
	if _, err := unix.Semctl(m.id, 0, unix.IPC_RMID, 0); err != nil {
		return fmt.Errorf("shm: semctl IPC_RMID: %w", err)
	}

	return nil
}
