package view

import (
	"path/filepath"

	"github.com/avolle/treenav/internal/arena"
	"github.com/avolle/treenav/internal/fstree"
)

// Remap maps the previously selected handle into a freshly projected
// list. If the node is still displayed its new index wins; otherwise
// the nearest displayed ancestor is selected (typically the directory
// that was just closed); failing both, index 0.
func Remap(items []ViewItem, prev arena.Handle, t *fstree.Tree) int {
	if len(items) == 0 {
		return 0
	}

	if idx, ok := indexOfHandle(items, prev); ok {
		return idx
	}

	node, ok := t.Node(prev)
	if !ok {
		return 0
	}

	for path := node.Path; ; {
		parent := filepath.Dir(path)
		if parent == path {
			return 0
		}
		path = parent
		h, ok := t.Lookup(path)
		if !ok {
			continue
		}
		if idx, ok := indexOfHandle(items, h); ok {
			return idx
		}
	}
}

func indexOfHandle(items []ViewItem, h arena.Handle) (int, bool) {
	for i, item := range items {
		if item.Handle == h {
			return i, true
		}
	}
	return 0, false
}
