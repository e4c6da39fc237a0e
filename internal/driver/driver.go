// Package driver runs the compilation pipeline: scan, parse, check and
// generate code, accumulating diagnostics in a shared bag. One
// compilation is single-threaded; CheckDir fans out over independent
// files.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pl0/internal/ast"
	"pl0/internal/codegen"
	"pl0/internal/diag"
	"pl0/internal/parser"
	"pl0/internal/sema"
	"pl0/internal/source"
)

// SourceExt is the source file extension.
const SourceExt = ".pl0"

// Options configures a compilation.
type Options struct {
	// MaxDiagnostics caps the bag; zero keeps the built-in limit.
	MaxDiagnostics int
	// CheckOnly stops the pipeline after the static checker.
	CheckOnly bool
}

// Result is the outcome of compiling one source file.
type Result struct {
	Path string
	File *source.File
	Bag  *diag.Bag
	Prog *ast.Program
	// Words is the executable image, nil when the compilation had
	// errors or was check-only.
	Words []int32
}

// Compile runs the pipeline over an in-memory source file. Fatal
// diagnostics abort the pipeline via a typed panic recovered here; they
// end up in the bag like any other diagnostic.
func Compile(file *source.File, opts Options) *Result {
	res := &Result{
		Path: file.Name(),
		File: file,
		Bag:  diag.NewBag(opts.MaxDiagnostics),
	}
	rep := diag.BagReporter{Bag: res.Bag}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(diag.Fatal); !ok {
					panic(r)
				}
			}
		}()
		res.Prog = parser.Parse(file, rep)
		sema.Check(res.Prog, rep)
		if opts.CheckOnly || res.Bag.HasErrors() {
			return
		}
		res.Words = codegen.Generate(res.Prog, rep)
	}()
	res.Bag.Sort()
	return res
}

// CompileFile reads and compiles one source file from disk.
func CompileFile(path string, opts Options) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(source.NewFile(path, content), opts), nil
}

// ListSources returns the sorted paths of every source file under dir.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every source file under dir concurrently. Results come
// back in path order; a file that fails to load surfaces as an error
// from the group.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) ([]*Result, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	opts.CheckOnly = true
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := CompileFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
