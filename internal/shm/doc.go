// Package shm implements the OS-level capabilities pkg/denv depends on
// abstractly: a named shared-memory segment of fixed byte length attached
// by unrelated processes, and a binary, process-shared semaphore
// guarding it.
//
// Both are backed by System V IPC (shmget/shmat/shmdt and
// semget/semop/semctl) via golang.org/x/sys/unix, keyed off the same
// filesystem path so that every process pointed at the same backing path
// attaches the same segment and the same semaphore without any explicit
// handshake.
package shm
