package view

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/avolle/treenav/internal/fstree"
)

type fakeLister struct {
	children map[string][]string
	dirs     map[string]bool
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		children: make(map[string][]string),
		dirs:     make(map[string]bool),
	}
}

func (f *fakeLister) addDir(path string, children ...string) {
	f.dirs[path] = true
	f.children[path] = children
}

func (f *fakeLister) List(path string) ([]string, error) {
	return f.children[path], nil
}

func (f *fakeLister) KindOf(path string) fstree.Kind {
	if f.dirs[path] {
		return fstree.KindDirectory
	}
	return fstree.KindFile
}

// layout:
//
//	/root
//	  a/
//	    x.txt
//	    y/
//	      z.txt
//	  .hidden
//	  b.txt
func newBrowseTree(t *testing.T) *fstree.Tree {
	t.Helper()
	l := newFakeLister()
	root := filepath.Join("/", "root")
	a := filepath.Join(root, "a")
	y := filepath.Join(a, "y")
	l.addDir(root, a, filepath.Join(root, ".hidden"), filepath.Join(root, "b.txt"))
	l.addDir(a, filepath.Join(a, "x.txt"), y)
	l.addDir(y, filepath.Join(y, "z.txt"))
	tree := fstree.New(root, l)
	tree.SetOpen(tree.Root(), true)
	return tree
}

func names(items []ViewItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func paths(items []ViewItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Path
	}
	return out
}

func pathSet(items []ViewItem) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it.Path] = true
	}
	return set
}

func TestProjectAlphabeticalIsPreorderPathOrder(t *testing.T) {
	tree := newBrowseTree(t)
	a, _ := tree.Lookup(filepath.Join("/", "root", "a"))
	tree.ToggleOpen(a)

	items := Project(tree, Filter{}, SortAlphabetical)

	want := []string{"root", ".hidden", "a", "x.txt", "y", "b.txt"}
	if got := names(items); !reflect.DeepEqual(got, want) {
		t.Errorf("projection = %v, want %v", got, want)
	}
}

func TestProjectDepths(t *testing.T) {
	tree := newBrowseTree(t)
	a, _ := tree.Lookup(filepath.Join("/", "root", "a"))
	tree.ToggleOpen(a)

	items := Project(tree, Filter{}, SortAlphabetical)
	for _, it := range items {
		// Depth must equal the number of ancestors below the root path.
		want := 0
		rel, _ := filepath.Rel(filepath.Join("/", "root"), it.Path)
		if rel != "." {
			want = len(strings.Split(filepath.ToSlash(rel), "/"))
		}
		if it.Depth != want {
			t.Errorf("%s: depth = %d, want %d", it.Path, it.Depth, want)
		}
	}
}

func TestProjectClosedDirPrunesSubtree(t *testing.T) {
	tree := newBrowseTree(t)
	a, _ := tree.Lookup(filepath.Join("/", "root", "a"))
	tree.ToggleOpen(a)

	open := Project(tree, Filter{}, SortAlphabetical)
	tree.ToggleOpen(a) // close again
	closed := Project(tree, Filter{}, SortAlphabetical)

	aPath := filepath.Join("/", "root", "a")
	set := pathSet(closed)
	if !set[aPath] {
		t.Error("closed directory's own entry must remain")
	}
	for _, it := range open {
		strict := it.Path != aPath && within(aPath, it.Path)
		if strict && set[it.Path] {
			t.Errorf("descendant %s still projected after close", it.Path)
		}
	}
}

// within reports whether path is a strict descendant of dir.
func within(dir, path string) bool {
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

func TestProjectDotfileFilterPrunesSubtree(t *testing.T) {
	l := newFakeLister()
	root := filepath.Join("/", "root")
	dot := filepath.Join(root, ".git")
	l.addDir(root, dot, filepath.Join(root, "main.go"))
	l.addDir(dot, filepath.Join(dot, "config"))
	tree := fstree.New(root, l)
	tree.SetOpen(tree.Root(), true)
	g, _ := tree.Lookup(dot)
	tree.ToggleOpen(g) // open, so only the filter can hide it

	items := Project(tree, Filter{HideDotfiles: true}, SortAlphabetical)
	for _, it := range items {
		if it.Path == dot || within(dot, it.Path) {
			t.Errorf("%s projected despite dotfile filter", it.Path)
		}
	}
	if got := names(items); !reflect.DeepEqual(got, []string{"root", "main.go"}) {
		t.Errorf("projection = %v, want [root main.go]", got)
	}
}

func TestProjectHideFiles(t *testing.T) {
	tree := newBrowseTree(t)
	items := Project(tree, Filter{HideFiles: true}, SortAlphabetical)
	for _, it := range items {
		if it.Kind == fstree.KindFile {
			t.Errorf("file %s projected despite file filter", it.Path)
		}
	}
}

func TestProjectHideClosedDirsKeepsOpenOnes(t *testing.T) {
	tree := newBrowseTree(t)
	a, _ := tree.Lookup(filepath.Join("/", "root", "a"))
	tree.ToggleOpen(a)

	items := Project(tree, Filter{HideClosedDirs: true}, SortAlphabetical)
	set := pathSet(items)

	if !set[filepath.Join("/", "root", "a")] {
		t.Error("open directory hidden by the closed-dir filter")
	}
	if set[filepath.Join("/", "root", "a", "y")] {
		t.Error("closed directory survived the closed-dir filter")
	}
}

func TestSortChangesOrderNotSet(t *testing.T) {
	tree := newBrowseTree(t)
	a, _ := tree.Lookup(filepath.Join("/", "root", "a"))
	tree.ToggleOpen(a)

	modes := []SortMode{SortDirsFirst, SortFilesFirst, SortAlphabetical}
	base := pathSet(Project(tree, Filter{}, SortDirsFirst))
	for _, mode := range modes {
		got := pathSet(Project(tree, Filter{}, mode))
		if !reflect.DeepEqual(got, base) {
			t.Errorf("sort %v changed the displayed set", mode)
		}
	}
}

func TestSortModes(t *testing.T) {
	tree := newBrowseTree(t)

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortDirsFirst, []string{"root", "a", ".hidden", "b.txt"}},
		{SortFilesFirst, []string{"root", ".hidden", "b.txt", "a"}},
		{SortAlphabetical, []string{"root", ".hidden", "a", "b.txt"}},
	}
	for _, tt := range tests {
		items := Project(tree, Filter{}, tt.mode)
		if got := names(items); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%v: projection = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

// The end-to-end walkthrough: lazy load on first toggle, then the
// dotfile filter removing .hidden.
func TestBrowseScenario(t *testing.T) {
	tree := newBrowseTree(t)

	items := Project(tree, Filter{}, SortDirsFirst)
	if got := names(items[1:]); !reflect.DeepEqual(got, []string{"a", ".hidden", "b.txt"}) {
		t.Fatalf("initial projection = %v, want [a .hidden b.txt]", got)
	}

	a, ok := tree.Lookup(filepath.Join("/", "root", "a"))
	if !ok {
		t.Fatal("a not indexed")
	}
	tree.ToggleOpen(a)

	items = Project(tree, Filter{}, SortDirsFirst)
	want := []string{"a", "y", "x.txt", ".hidden", "b.txt"}
	if got := names(items[1:]); !reflect.DeepEqual(got, want) {
		t.Fatalf("after toggle = %v, want %v", got, want)
	}

	items = Project(tree, Filter{HideDotfiles: true}, SortDirsFirst)
	want = []string{"a", "y", "x.txt", "b.txt"}
	if got := names(items[1:]); !reflect.DeepEqual(got, want) {
		t.Fatalf("with dotfile filter = %v, want %v", got, want)
	}
}

func TestProjectIsStateless(t *testing.T) {
	tree := newBrowseTree(t)
	first := Project(tree, Filter{}, SortDirsFirst)
	second := Project(tree, Filter{}, SortDirsFirst)
	if !reflect.DeepEqual(paths(first), paths(second)) {
		t.Error("repeated projection of unchanged state differed")
	}
}
