package diskscan

import (
	"io/fs"
	"os"
)

// FS is the filesystem surface the scan engine walks. It exists so tests
// can substitute synthetic trees and count accesses.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// osFS reads the real filesystem.
type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

// OS returns an FS backed by the host filesystem.
func OS() FS {
	return osFS{}
}
