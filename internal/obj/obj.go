// Package obj reads and writes compiled program images. A .pmo file is
// a msgpack-encoded Program with a schema version for safe invalidation
// when the instruction set changes.
package obj

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema is the current object file schema version. Increment when the
// Program format or the instruction set changes.
const Schema uint16 = 1

// Ext is the object file extension.
const Ext = ".pmo"

// ErrSchema reports an object file written under a different schema
// version.
var ErrSchema = errors.New("object file schema mismatch")

// Program is a compiled code image ready to execute.
type Program struct {
	Schema uint16
	Words  []int32
}

// Write encodes the program to path atomically.
func Write(path string, words []int32) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*"+Ext)
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&Program{Schema: Schema, Words: words}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read decodes a program from path and validates its schema version.
func Read(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Program
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if p.Schema != Schema {
		return nil, fmt.Errorf("%w: file has %d, expected %d", ErrSchema, p.Schema, Schema)
	}
	return &p, nil
}
