// Package fstree maintains a lazily expanded in-memory tree of a
// filesystem subtree. Nodes live in a generational arena and are
// addressed by handles; a path index gives O(1) lookup by path.
package fstree

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/avolle/treenav/internal/arena"
	"github.com/avolle/treenav/internal/logging"
)

// Kind distinguishes directories from files.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// IsDir reports whether the kind is a directory.
func (k Kind) IsDir() bool { return k == KindDirectory }

// Node is one filesystem entry. Only Open and Loaded mutate after
// creation; Path and Kind are fixed and Children only grows on load.
type Node struct {
	Path     string
	Kind     Kind
	Children []arena.Handle
	Open     bool
	Loaded   bool
}

// Name returns the leaf name of the node's path.
func (n *Node) Name() string { return filepath.Base(n.Path) }

// Lister enumerates directory children and probes entry kinds. The
// production implementation reads the OS filesystem; tests substitute
// an in-memory fake.
type Lister interface {
	// List returns the full paths of path's direct children, in no
	// particular order.
	List(path string) ([]string, error)
	// KindOf probes whether path is a directory or a file.
	KindOf(path string) Kind
}

// OSLister reads the real filesystem.
type OSLister struct{}

func (OSLister) List(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(path, e.Name()))
	}
	return paths, nil
}

func (OSLister) KindOf(path string) Kind {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return KindDirectory
	}
	return KindFile
}

// Tree owns the arena of nodes, the root handle and the path index.
// The index has exactly one entry per live node.
type Tree struct {
	nodes  *arena.Arena[Node]
	root   arena.Handle
	byPath map[string]arena.Handle
	lister Lister
}

// New builds a tree with a single unloaded, closed root at rootPath.
func New(rootPath string, lister Lister) *Tree {
	rootPath = filepath.Clean(rootPath)
	t := &Tree{
		nodes:  arena.New[Node](),
		byPath: make(map[string]arena.Handle),
		lister: lister,
	}
	t.root = t.nodes.Insert(Node{
		Path: rootPath,
		Kind: lister.KindOf(rootPath),
	})
	t.byPath[rootPath] = t.root
	return t
}

// Root returns the handle of the root node.
func (t *Tree) Root() arena.Handle { return t.root }

// Len reports the number of nodes currently in the tree.
func (t *Tree) Len() int { return t.nodes.Len() }

// Node resolves a handle. The pointer is valid until the next mutation
// that inserts nodes (LoadChildren, ToggleOpen, SetOpen).
func (t *Tree) Node(h arena.Handle) (*Node, bool) {
	return t.nodes.Get(h)
}

// Lookup resolves a path to its handle via the index.
func (t *Tree) Lookup(path string) (arena.Handle, bool) {
	h, ok := t.byPath[filepath.Clean(path)]
	return h, ok
}

// Parent returns the handle of h's parent, resolved through the path
// index. The root (and any node whose parent was never materialized)
// has no parent.
func (t *Tree) Parent(h arena.Handle) (arena.Handle, bool) {
	node, ok := t.nodes.Get(h)
	if !ok || h == t.root {
		return arena.Handle{}, false
	}
	parent := filepath.Dir(node.Path)
	if parent == node.Path {
		return arena.Handle{}, false
	}
	ph, ok := t.byPath[parent]
	return ph, ok
}

// LoadChildren enumerates h's children through the lister and inserts a
// node for each. It is idempotent; a second call is a no-op. A listing
// failure leaves the directory loaded with zero children, so expansion
// degrades to an empty folder instead of an error state.
func (t *Tree) LoadChildren(h arena.Handle) {
	node, ok := t.nodes.Get(h)
	if !ok || node.Kind != KindDirectory || node.Loaded {
		return
	}
	dirPath := node.Path

	childPaths, err := t.lister.List(dirPath)
	if err != nil {
		logging.Warn("directory listing failed",
			zap.String("path", dirPath),
			zap.Error(err))
		childPaths = nil
	}

	// Inserting may grow the arena and invalidate node pointers, so
	// collect the child handles first and re-resolve the parent after.
	children := make([]arena.Handle, 0, len(childPaths))
	for _, p := range childPaths {
		p = filepath.Clean(p)
		if _, exists := t.byPath[p]; exists {
			continue
		}
		ch := t.nodes.Insert(Node{Path: p, Kind: t.lister.KindOf(p)})
		t.byPath[p] = ch
		children = append(children, ch)
	}

	node, ok = t.nodes.Get(h)
	if !ok {
		return
	}
	node.Children = append(node.Children, children...)
	node.Loaded = true
}

// ToggleOpen flips a directory's open state, loading its children first
// when opening for the first time. Files and stale handles are no-ops.
func (t *Tree) ToggleOpen(h arena.Handle) {
	node, ok := t.nodes.Get(h)
	if !ok || node.Kind != KindDirectory {
		return
	}
	opening := !node.Open
	if opening && !node.Loaded {
		t.LoadChildren(h)
		node, ok = t.nodes.Get(h)
		if !ok {
			return
		}
	}
	node.Open = opening
}

// SetOpen sets a directory's open state explicitly, keeping the
// open-implies-loaded invariant.
func (t *Tree) SetOpen(h arena.Handle, open bool) {
	node, ok := t.nodes.Get(h)
	if !ok || node.Kind != KindDirectory {
		return
	}
	if open && !node.Loaded {
		t.LoadChildren(h)
		node, ok = t.nodes.Get(h)
		if !ok {
			return
		}
	}
	node.Open = open
}
