package surface

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// BackingStore is the anonymous shared-memory file behind the pixel buffer.
// The memfd is held under an exclusive flock for the life of the process,
// and its length only ever grows: wl_shm pools cannot shrink, so the file
// keeps its high-water size while the logical size tracks the most recent
// configure.
type BackingStore struct {
	fd       int
	size     int // logical size of the current frame
	alloc    int // file length, grow-only
	data     []byte
	needZero bool
}

// NewBackingStore creates and locks an empty store.
func NewBackingStore() (*BackingStore, error) {
	fd, err := unix.MemfdCreate("walk-bg", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("surface: memfd_create: %w", err)
	}
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("surface: flock: %w", err)
	}
	return &BackingStore{fd: fd}, nil
}

// Resize sets the logical size, growing the file when needed. Growth drops
// the current mapping; the next Map re-establishes it. The visible region
// reads as zeroes after any resize.
func (s *BackingStore) Resize(size int) error {
	if s.fd < 0 {
		return ErrStoreClosed
	}
	if size <= 0 {
		return fmt.Errorf("surface: invalid store size %d", size)
	}
	if size > s.alloc {
		if err := unix.Ftruncate(s.fd, int64(size)); err != nil {
			return fmt.Errorf("surface: ftruncate to %d: %w", size, err)
		}
		if s.data != nil {
			if err := unix.Munmap(s.data); err != nil {
				return fmt.Errorf("surface: munmap: %w", err)
			}
			s.data = nil
		}
		s.alloc = size
	}
	s.size = size
	s.needZero = true
	return nil
}

// Map returns the writable logical region, mapping the file on first use
// after a growth. The returned slice stays valid until the next Resize
// that grows the store, or Close.
func (s *BackingStore) Map() ([]byte, error) {
	if s.fd < 0 {
		return nil, ErrStoreClosed
	}
	if s.size == 0 {
		return nil, ErrNotConfigured
	}
	if s.data == nil {
		data, err := unix.Mmap(s.fd, 0, s.alloc, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return nil, fmt.Errorf("surface: mmap %d bytes: %w", s.alloc, err)
		}
		s.data = data
	}
	buf := s.data[:s.size]
	if s.needZero {
		for i := range buf {
			buf[i] = 0
		}
		s.needZero = false
	}
	return buf, nil
}

// Fd returns the file descriptor shared with the compositor.
func (s *BackingStore) Fd() int { return s.fd }

// Size returns the logical size in bytes.
func (s *BackingStore) Size() int { return s.size }

// Alloc returns the allocated file length in bytes.
func (s *BackingStore) Alloc() int { return s.alloc }

// Close unmaps and releases the store. Safe to call twice.
func (s *BackingStore) Close() error {
	if s.fd < 0 {
		return nil
	}
	if s.data != nil {
		unix.Munmap(s.data)
		s.data = nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
