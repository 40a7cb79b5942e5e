// Package view turns tree state into the flat list the browser renders,
// and remaps the selection across rebuilds. Projection is pure: it
// never caches and never writes back into the tree.
package view

import (
	"sort"
	"strings"

	"github.com/avolle/treenav/internal/arena"
	"github.com/avolle/treenav/internal/fstree"
)

// SortMode is a total order over sibling entries, applied only while
// projecting.
type SortMode int

const (
	SortDirsFirst SortMode = iota
	SortFilesFirst
	SortAlphabetical
)

func (s SortMode) String() string {
	switch s {
	case SortDirsFirst:
		return "dirs-first"
	case SortFilesFirst:
		return "files-first"
	case SortAlphabetical:
		return "alphabetical"
	}
	return "unknown"
}

// Next cycles to the following sort mode.
func (s SortMode) Next() SortMode {
	switch s {
	case SortDirsFirst:
		return SortFilesFirst
	case SortFilesFirst:
		return SortAlphabetical
	default:
		return SortDirsFirst
	}
}

// ParseSortMode maps a config/flag string to a SortMode.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "dirs-first":
		return SortDirsFirst, true
	case "files-first":
		return SortFilesFirst, true
	case "alphabetical", "alpha":
		return SortAlphabetical, true
	}
	return SortDirsFirst, false
}

// Filter hides categories of entries. The toggles combine
// conjunctively: an entry survives only if no enabled toggle hides it.
type Filter struct {
	HideFiles      bool
	HideClosedDirs bool
	HideDotfiles   bool
}

// ViewItem is one row of projected output. It is a snapshot; the tree
// may change after projection without affecting existing items.
type ViewItem struct {
	Handle arena.Handle
	Path   string
	Name   string
	Kind   fstree.Kind
	Open   bool
	Depth  int
}

// Project walks the tree pre-order from the root and returns the
// display list for the given filter and sort. Children of a directory
// are visited only while it is open, through a freshly sorted copy of
// its child handles. A child failing the filter is skipped along with
// its entire subtree. The root itself is always emitted.
func Project(t *fstree.Tree, f Filter, s SortMode) []ViewItem {
	var items []ViewItem
	collect(t, t.Root(), 0, f, s, &items)
	return items
}

func collect(t *fstree.Tree, h arena.Handle, depth int, f Filter, s SortMode, items *[]ViewItem) {
	node, ok := t.Node(h)
	if !ok {
		return
	}

	*items = append(*items, ViewItem{
		Handle: h,
		Path:   node.Path,
		Name:   node.Name(),
		Kind:   node.Kind,
		Open:   node.Open,
		Depth:  depth,
	})

	if node.Kind != fstree.KindDirectory || !node.Open {
		return
	}

	children := sortedChildren(t, node.Children, s)
	for _, ch := range children {
		if !passes(t, ch, f) {
			continue
		}
		collect(t, ch, depth+1, f, s, items)
	}
}

// sortedChildren returns a sorted copy; sibling order in the tree is
// never touched.
func sortedChildren(t *fstree.Tree, children []arena.Handle, s SortMode) []arena.Handle {
	out := make([]arena.Handle, len(children))
	copy(out, children)

	sort.SliceStable(out, func(i, j int) bool {
		a, aok := t.Node(out[i])
		b, bok := t.Node(out[j])
		if !aok || !bok {
			return aok
		}
		switch s {
		case SortDirsFirst:
			if a.Kind.IsDir() != b.Kind.IsDir() {
				return a.Kind.IsDir()
			}
		case SortFilesFirst:
			if a.Kind.IsDir() != b.Kind.IsDir() {
				return b.Kind.IsDir()
			}
		}
		return a.Path < b.Path
	})
	return out
}

func passes(t *fstree.Tree, h arena.Handle, f Filter) bool {
	node, ok := t.Node(h)
	if !ok {
		return false
	}
	if f.HideDotfiles && strings.HasPrefix(node.Name(), ".") {
		return false
	}
	if f.HideFiles && node.Kind == fstree.KindFile {
		return false
	}
	// An open directory stays visible: the user is exploring it.
	if f.HideClosedDirs && node.Kind == fstree.KindDirectory && !node.Open {
		return false
	}
	return true
}
