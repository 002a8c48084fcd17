package hamarc

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts the filesystem operations the archive engine needs,
// in the same spirit as the teacher library's read-only FileSystem
// abstraction, extended to cover writes so create/append/delete/concatenate
// are exercisable against a fake in tests.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (io.ReadSeekCloser, error)
	Create(path string) (io.WriteCloser, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldpath, newpath string) error
}

type osFS struct{}

func (osFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (osFS) Open(p string) (io.ReadSeekCloser, error) { return os.Open(p) }
func (osFS) Create(p string) (io.WriteCloser, error) { return os.Create(p) }
func (osFS) MkdirAll(p string, perm os.FileMode) error { return os.MkdirAll(p, perm) }
func (osFS) Remove(p string) error { return os.Remove(p) }
func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

var defaultFS FileSystem = osFS{}
