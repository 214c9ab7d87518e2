// Package include collects include directives so that a header requested by
// several independent parts of a generated file is emitted once, in a
// deterministic order.
package include

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rubiojr/panini/style"
)

// ErrEmptyPath is returned when an entry without a path is added to a Set.
var ErrEmptyPath = errors.New("include path is empty")

// Entry is a single include directive.
type Entry struct {
	Path  string
	Style style.Include
}

// Depth is the number of folders in the entry's path.
func (e Entry) Depth() int {
	return strings.Count(e.Path, "/")
}

// Set is an ordered collection of entries without duplicates. The zero value
// is an empty set ready to use.
type Set struct {
	entries []Entry
}

// NewSet returns a set holding the given entries, coalescing duplicates.
func NewSet(entries ...Entry) (*Set, error) {
	s := &Set{}
	for _, e := range entries {
		if err := s.AddEntry(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts path with the given style. Adding a (path, style) pair that is
// already present is a no-op.
func (s *Set) Add(path string, st style.Include) error {
	return s.AddEntry(Entry{Path: path, Style: st})
}

// AddEntry inserts e unless an equal entry is already present.
func (s *Set) AddEntry(e Entry) error {
	if e.Path == "" {
		return ErrEmptyPath
	}
	if s.Contains(e) {
		return nil
	}
	s.entries = append(s.entries, e)
	return nil
}

// Merge adds every entry of other to s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		if !s.Contains(e) {
			s.entries = append(s.entries, e)
		}
	}
}

// Contains reports whether an entry with the same path and style exists.
func (s *Set) Contains(e Entry) bool {
	return slices.Contains(s.entries, e)
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in their current order.
func (s *Set) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{entries: slices.Clone(s.entries)}
}

// SortOptions controls the order established by Sort.
type SortOptions struct {
	// Inherit is the style given to entries added with style.InheritInclude.
	// When it is InheritInclude itself, style.DefaultInclude is used.
	Inherit style.Include
	// QuotedFirst places quoted includes before angle-bracket includes.
	QuotedFirst bool
}

// Sort orders the entries by style group, then by folder depth (deeper paths
// first), then by byte-wise path comparison. Entries with an inherited style
// are resolved first, and duplicates produced by that resolution are removed.
// The resulting order does not depend on insertion order.
func (s *Set) Sort(opts SortOptions) {
	fallback := opts.Inherit.Resolve(style.DefaultInclude)

	resolved := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		e.Style = e.Style.Resolve(fallback)
		if !slices.Contains(resolved, e) {
			resolved = append(resolved, e)
		}
	}

	slices.SortFunc(resolved, func(a, b Entry) int {
		if ga, gb := groupRank(a.Style, opts.QuotedFirst), groupRank(b.Style, opts.QuotedFirst); ga != gb {
			return ga - gb
		}
		if da, db := a.Depth(), b.Depth(); da != db {
			return db - da
		}
		return strings.Compare(a.Path, b.Path)
	})

	s.entries = resolved
}

func groupRank(st style.Include, quotedFirst bool) int {
	switch st {
	case style.AngleBrackets:
		if quotedFirst {
			return 2
		}
		return 0
	case style.DoubleQuotes:
		if quotedFirst {
			return 0
		}
		return 1
	case style.SingleQuotes:
		if quotedFirst {
			return 1
		}
		return 2
	}
	return 3
}
