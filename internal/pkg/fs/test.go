package fs

import (
	"os"
	"time"
)

type MockFileInfo struct {
	IsDirValue bool
}

func (m MockFileInfo) IsDir() bool        { return m.IsDirValue }
func (m MockFileInfo) ModTime() time.Time { return time.Time{} }
func (m MockFileInfo) Mode() os.FileMode  { return 0 }
func (m MockFileInfo) Name() string       { return "" }
func (m MockFileInfo) Size() int64        { return 1 }
func (m MockFileInfo) Sys() interface{}   { return nil }

// MockFS answers every call with the same info and error. WriteErr, when
// set, only fails writes.
type MockFS struct {
	Info     MockFileInfo
	Err      error
	WriteErr error
	Wd       string
	Data     []byte
}

func (fs MockFS) Open(name string) (*os.File, error)    { return nil, fs.Err }
func (fs MockFS) Stat(name string) (os.FileInfo, error) { return fs.Info, fs.Err }
func (fs MockFS) Getwd() (string, error)                { return fs.Wd, fs.Err }
func (fs MockFS) ReadFile(name string) ([]byte, error)  { return fs.Data, fs.Err }
func (fs MockFS) MkdirAll(string, os.FileMode) error    { return fs.Err }

func (fs MockFS) WriteFile(string, []byte, os.FileMode) error {
	if fs.WriteErr != nil {
		return fs.WriteErr
	}

	return fs.Err
}
