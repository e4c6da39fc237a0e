package types

import (
	"pl0/internal/diag"
	"pl0/internal/source"
)

// Resolver drives lazy type and constant resolution. It carries the
// diagnostics reporter and the set of declarations currently being
// resolved, which is how cycles through named types and constants are
// detected.
//
// A declaration calls Begin on its identity before resolving its body and
// End afterwards. Re-entering a declaration whose identity is busy is a
// cycle; the re-entered declaration reports it and settles on the error
// type, and the outer frames inherit that result without reporting again.
type Resolver struct {
	rep  diag.Reporter
	busy map[any]struct{}
}

func NewResolver(rep diag.Reporter) *Resolver {
	return &Resolver{rep: rep, busy: make(map[any]struct{})}
}

func (r *Resolver) Reporter() diag.Reporter { return r.rep }

// Busy reports whether key is currently being resolved.
func (r *Resolver) Busy(key any) bool {
	_, ok := r.busy[key]
	return ok
}

func (r *Resolver) Begin(key any) { r.busy[key] = struct{}{} }
func (r *Resolver) End(key any)   { delete(r.busy, key) }

// ResolveType resolves t and returns the resolved type. For identifier
// references the result is the referenced type (or Error); every other
// variant resolves in place and returns itself.
func (r *Resolver) ResolveType(t Type, pos source.Pos) Type {
	return t.resolve(r, pos)
}

func (r *Resolver) errorf(code diag.Code, pos source.Pos, format string, args ...any) {
	diag.Errorf(r.rep, code, pos, format, args...)
}

func (r *Resolver) fatalf(code diag.Code, pos source.Pos, format string, args ...any) {
	diag.Fatalf(r.rep, code, pos, format, args...)
}
