package source

import (
	"os"
	"sort"

	"fortio.org/safecast"
)

// File holds the contents of one source file together with its line table.
type File struct {
	name       string
	content    []byte
	lineStarts []Pos // offset of the first byte of each line, always starts with 0
}

// NewFile builds a File and computes its line table.
func NewFile(name string, content []byte) *File {
	f := &File{
		name:       name,
		content:    content,
		lineStarts: []Pos{0},
	}
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(err)
			}
			f.lineStarts = append(f.lineStarts, Pos(off))
		}
	}
	return f
}

// ReadFile loads a source file from disk.
func ReadFile(name string) (*File, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return NewFile(name, content), nil
}

// Name returns the file name as given to NewFile.
func (f *File) Name() string {
	return f.name
}

// Content returns the raw file contents.
func (f *File) Content() []byte {
	return f.content
}

// Size returns the length of the file in bytes.
func (f *File) Size() int {
	return len(f.content)
}

// LineCol converts a position to a 1-based line and column pair.
// NoPos and out-of-range positions map to line 0.
func (f *File) LineCol(p Pos) (line, col int) {
	if !p.Valid() || int(p) > len(f.content) {
		return 0, 0
	}
	i := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > p
	})
	return i, int(p-f.lineStarts[i-1]) + 1
}

// LineText returns the text of the 1-based line number, without the newline.
func (f *File) LineText(line int) string {
	if line < 1 || line > len(f.lineStarts) {
		return ""
	}
	start := int(f.lineStarts[line-1])
	end := len(f.content)
	if line < len(f.lineStarts) {
		end = int(f.lineStarts[line]) - 1
	}
	if end < start {
		end = start
	}
	return string(f.content[start:end])
}
