package filesystem

import (
	"bytes"
	"io/fs"
)

// Mock is an in-memory FS for tests.
type Mock struct {
	// Files maps path to contents.
	Files map[string][]byte

	// Function mocks - set these to override behavior for a call
	ReadLinesFunc func(path string) ([]string, error)
	WriteFunc     func(path string, content []byte) error
	CopyFunc      func(src, dst string) error
	IdenticalFunc func(path string, content []byte) bool

	// Call tracking
	ReadCalls  []string
	WriteCalls []WriteCall
	CopyCalls  []CopyCall
}

// WriteCall records arguments passed to Write
type WriteCall struct {
	Path    string
	Content string
}

// CopyCall records arguments passed to Copy
type CopyCall struct {
	Src string
	Dst string
}

// NewMock creates a Mock seeded with files.
func NewMock(files map[string]string) *Mock {
	m := &Mock{Files: make(map[string][]byte, len(files))}
	for path, content := range files {
		m.Files[path] = []byte(content)
	}
	return m
}

// ReadLines returns the lines of an in-memory file.
func (m *Mock) ReadLines(path string) ([]string, error) {
	m.ReadCalls = append(m.ReadCalls, path)
	if m.ReadLinesFunc != nil {
		return m.ReadLinesFunc(path)
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return SplitLines(bytes.NewReader(data))
}

// Write stores content under path.
func (m *Mock) Write(path string, content []byte) error {
	m.WriteCalls = append(m.WriteCalls, WriteCall{Path: path, Content: string(content)})
	if m.WriteFunc != nil {
		return m.WriteFunc(path, content)
	}
	m.ensure()
	m.Files[path] = append([]byte(nil), content...)
	return nil
}

// Copy duplicates src under dst.
func (m *Mock) Copy(src, dst string) error {
	m.CopyCalls = append(m.CopyCalls, CopyCall{Src: src, Dst: dst})
	if m.CopyFunc != nil {
		return m.CopyFunc(src, dst)
	}
	data, ok := m.Files[src]
	if !ok {
		return &fs.PathError{Op: "open", Path: src, Err: fs.ErrNotExist}
	}
	m.ensure()
	m.Files[dst] = append([]byte(nil), data...)
	return nil
}

// Identical compares an in-memory file with content.
func (m *Mock) Identical(path string, content []byte) bool {
	if m.IdenticalFunc != nil {
		return m.IdenticalFunc(path, content)
	}
	data, ok := m.Files[path]
	return ok && bytes.Equal(data, content)
}

// Exists reports whether path is present.
func (m *Mock) Exists(path string) bool {
	_, ok := m.Files[path]
	return ok
}

// Content returns the file at path as a string ("" if absent).
func (m *Mock) Content(path string) string {
	return string(m.Files[path])
}

// Written reports whether Write was called for path.
func (m *Mock) Written(path string) bool {
	for _, c := range m.WriteCalls {
		if c.Path == path {
			return true
		}
	}
	return false
}

func (m *Mock) ensure() {
	if m.Files == nil {
		m.Files = make(map[string][]byte)
	}
}
