package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/avolle/treenav/internal/arena"
	"github.com/avolle/treenav/internal/fstree"
)

var (
	flagExportDepth  int
	flagExportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Print a directory tree as YAML or JSON",
	Long: `Export expands the tree to the given depth using the same lazy
loader as the browser and prints the result to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", root)
		}

		tree := fstree.New(root, fstree.OSLister{})
		entry := exportSubtree(tree, tree.Root(), flagExportDepth)

		var out []byte
		switch flagExportFormat {
		case "yaml":
			out, err = yaml.Marshal(entry)
		case "json":
			out, err = json.MarshalIndent(entry, "", "  ")
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", flagExportFormat)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

type exportEntry struct {
	Name     string        `json:"name" yaml:"name"`
	Path     string        `json:"path" yaml:"path"`
	Dir      bool          `json:"dir" yaml:"dir"`
	Children []exportEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// exportSubtree expands directories down to depth levels and converts
// the loaded subtree into a nested listing, directories first.
func exportSubtree(t *fstree.Tree, h arena.Handle, depth int) exportEntry {
	node, ok := t.Node(h)
	if !ok {
		return exportEntry{}
	}
	entry := exportEntry{
		Name: node.Name(),
		Path: node.Path,
		Dir:  node.Kind.IsDir(),
	}
	if !node.Kind.IsDir() || depth == 0 {
		return entry
	}

	t.LoadChildren(h)
	node, _ = t.Node(h)

	children := make([]arena.Handle, len(node.Children))
	copy(children, node.Children)
	sort.Slice(children, func(i, j int) bool {
		a, aok := t.Node(children[i])
		b, bok := t.Node(children[j])
		if !aok || !bok {
			return aok
		}
		if a.Kind.IsDir() != b.Kind.IsDir() {
			return a.Kind.IsDir()
		}
		return a.Path < b.Path
	})

	for _, ch := range children {
		entry.Children = append(entry.Children, exportSubtree(t, ch, depth-1))
	}
	return entry
}

func init() {
	exportCmd.Flags().IntVar(&flagExportDepth, "depth", 2, "how many directory levels to expand (-1 for unlimited)")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "output format: yaml or json")
}
