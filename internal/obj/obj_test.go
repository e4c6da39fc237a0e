package obj

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out"+Ext)
	words := []int32{0, 1, 2, -3, 1 << 20}
	if err := Write(path, words); err != nil {
		t.Fatal(err)
	}
	p, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Schema != Schema {
		t.Errorf("schema = %d, want %d", p.Schema, Schema)
	}
	if !slices.Equal(p.Words, words) {
		t.Errorf("words = %v, want %v", p.Words, words)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale"+Ext)
	raw, err := msgpack.Marshal(&Program{Schema: Schema + 1, Words: []int32{0}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); !errors.Is(err, ErrSchema) {
		t.Errorf("err = %v, want %v", err, ErrSchema)
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent"+Ext)); err == nil {
		t.Error("expected error for missing file")
	}
}
