// Package plan implements the query planner: it rewrites JOIN ... ON
// predicates into Hash-join executors when the
// equi-join keys are separable, threading a lexical Context of visible
// table columns as it walks the tree.
package plan

import "github.com/gluesql/gluesql-sub000/core/sqlerr"

// Context is an immutable singly-linked scope stack: each
// frame records one table alias and the columns visible through it,
// with an optional link to the enclosing (outer) scope for correlated
// subqueries.
type Context struct {
	Alias   string
	Columns []string
	Next    *Context
}

// NewContext pushes a new frame in front of outer (outer may be nil).
func NewContext(alias string, columns []string, outer *Context) *Context {
	return &Context{Alias: alias, Columns: columns, Next: outer}
}

// Contains reports whether name is visible, scanning inner to outer.
func (c *Context) Contains(name string) bool {
	for f := c; f != nil; f = f.Next {
		for _, col := range f.Columns {
			if col == name {
				return true
			}
		}
	}
	return false
}

// ContainsQualified reports whether alias.name is visible: only the
// frame whose Alias matches is consulted.
func (c *Context) ContainsQualified(alias, name string) bool {
	for f := c; f != nil; f = f.Next {
		if f.Alias != alias {
			continue
		}
		for _, col := range f.Columns {
			if col == name {
				return true
			}
		}
		return false
	}
	return false
}

// Ambiguous reports whether an unqualified name resolves in more than
// one frame at the innermost level where it appears.
func (c *Context) Ambiguous(name string) bool {
	count := 0
	for f := c; f != nil; f = f.Next {
		frameHit := false
		for _, col := range f.Columns {
			if col == name {
				frameHit = true
				break
			}
		}
		if frameHit {
			count++
		}
	}
	return count > 1
}

// Merge concatenates two contexts into one scope (used when building
// a join's combined key/value scope): frames of a come first (inner),
// then frames of b.
func Merge(a, b *Context) *Context {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	frames := make([]*Context, 0)
	for f := a; f != nil; f = f.Next {
		frames = append(frames, &Context{Alias: f.Alias, Columns: f.Columns})
	}
	out := b
	for i := len(frames) - 1; i >= 0; i-- {
		frames[i].Next = out
		out = frames[i]
	}
	return out
}

var errAmbiguous = sqlerr.New(sqlerr.KindAmbiguousIdentifier, "ambiguous identifier")
