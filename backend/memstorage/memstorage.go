// Package memstorage provides an in-memory backend.Storage for
// exercising package image's on-disk algorithms without touching the
// filesystem.
package memstorage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/irinakurteva99/bdsm-go/backend"
)

// Storage is a growable in-memory byte buffer that implements
// backend.Storage.
type Storage struct {
	buf    []byte
	pos    int64
	closed bool
}

// New creates an empty in-memory storage, pre-sized to size bytes.
func New(size int) *Storage {
	return &Storage{buf: make([]byte, size)}
}

func (s *Storage) growTo(n int64) {
	if int64(len(s.buf)) >= n {
		return
	}
	grown := make([]byte, n)
	copy(grown, s.buf)
	s.buf = grown
}

func (s *Storage) Read(p []byte) (int, error) {
	n, err := s.ReadAt(p, s.pos)
	s.pos += int64(n)
	return n, err
}

func (s *Storage) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *Storage) WriteAt(p []byte, off int64) (int, error) {
	s.growTo(off + int64(len(p)))
	return copy(s.buf[off:], p), nil
}

func (s *Storage) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.buf)) + offset
	default:
		return 0, errors.New("memstorage: invalid whence")
	}
	return s.pos, nil
}

func (s *Storage) Close() error {
	s.closed = true
	return nil
}

func (s *Storage) Stat() (fs.FileInfo, error) {
	return memFileInfo{size: int64(len(s.buf))}, nil
}

func (s *Storage) Sys() (*os.File, error) {
	return nil, errors.New("memstorage: no underlying os.File")
}

func (s *Storage) Writable() (backend.WritableFile, error) {
	if s.closed {
		return nil, backend.ErrIncorrectOpenMode
	}
	return s, nil
}

type memFileInfo struct {
	size int64
}

func (m memFileInfo) Name() string       { return "memstorage" }
func (m memFileInfo) Size() int64        { return m.size }
func (m memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (m memFileInfo) ModTime() time.Time { return time.Time{} }
func (m memFileInfo) IsDir() bool        { return false }
func (m memFileInfo) Sys() any           { return nil }
