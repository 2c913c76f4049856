package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Key derives a stable System V IPC key from path and project, mirroring
// the classic ftok(3) algorithm: the low bits of the device number, the
// low 16 bits of the inode number, and the project byte are packed into
// a single 32-bit key. Two processes that resolve to the same (path,
// project) therefore derive the identical key without any further
// coordination, which is how independently started processes find the
// same segment and semaphore from nothing but a filesystem path.
//
// path must name an existing file; EnsureBackingFile creates an empty one
// if needed purely to give this function a stable inode to key off.
func Key(path string, project byte) (int, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("shm: stat %s: %w", path, err)
	}

	key := (int32(project) << 24) | (int32(st.Dev&0xff) << 16) | int32(st.Ino&0xffff)

	return int(key), nil
}

// EnsureBackingFile creates an empty regular file at path if one does not
// already exist, so that Key has something stable to stat.
func EnsureBackingFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("shm: create backing file %s: %w", path, err)
	}

	return f.Close()
}
