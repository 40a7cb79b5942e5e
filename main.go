package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolle/treenav/internal/config"
	"github.com/avolle/treenav/internal/logging"
	"github.com/avolle/treenav/internal/tui"
	"github.com/avolle/treenav/internal/view"
)

var (
	flagSort           string
	flagHideFiles      bool
	flagHideClosedDirs bool
	flagHideDotfiles   bool
	flagNoPreview      bool
)

var rootCmd = &cobra.Command{
	Use:     "treenav [path]",
	Version: config.Version,
	Short:   "An interactive filesystem tree browser for the terminal",
	Long: `treenav browses a directory tree in place. Folders expand lazily,
the view can be filtered (files, closed directories, dotfiles) and
re-sorted on the fly, and files can be previewed with syntax
highlighting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := logging.Init(logging.Config{
			Level:      cfg.LogLevel,
			OutputPath: cfg.LogFile,
		}); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer logging.Sync()

		root := "."
		if len(args) > 0 {
			root = args[0]
		} else if cwd, err := os.Getwd(); err == nil {
			root = cwd
		}
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", root)
		}

		opts := optionsFromConfig(cmd, cfg)
		logging.Info("starting browser")
		return tui.RunBrowser(root, opts)
	},
}

// optionsFromConfig merges config-file values with explicit flags;
// a flag the user set wins.
func optionsFromConfig(cmd *cobra.Command, cfg *config.Config) tui.Options {
	sortMode, ok := view.ParseSortMode(cfg.Sort)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown sort mode %q in config, using dirs-first\n", cfg.Sort)
	}
	opts := tui.Options{
		Filter: view.Filter{
			HideFiles:      cfg.HideFiles,
			HideClosedDirs: cfg.HideClosedDirs,
			HideDotfiles:   cfg.HideDotfiles,
		},
		Sort:         sortMode,
		Preview:      cfg.Preview,
		PreviewBytes: cfg.PreviewBytes,
	}

	if cmd.Flags().Changed("sort") {
		if s, ok := view.ParseSortMode(flagSort); ok {
			opts.Sort = s
		}
	}
	if cmd.Flags().Changed("hide-files") {
		opts.Filter.HideFiles = flagHideFiles
	}
	if cmd.Flags().Changed("hide-closed-dirs") {
		opts.Filter.HideClosedDirs = flagHideClosedDirs
	}
	if cmd.Flags().Changed("hide-dotfiles") {
		opts.Filter.HideDotfiles = flagHideDotfiles
	}
	if flagNoPreview {
		opts.Preview = false
	}
	return opts
}

func init() {
	rootCmd.Flags().StringVar(&flagSort, "sort", "dirs-first", "sort mode: dirs-first, files-first, alphabetical")
	rootCmd.Flags().BoolVar(&flagHideFiles, "hide-files", false, "hide files, show only directories")
	rootCmd.Flags().BoolVar(&flagHideClosedDirs, "hide-closed-dirs", false, "hide closed directories")
	rootCmd.Flags().BoolVar(&flagHideDotfiles, "hide-dotfiles", false, "hide dotfiles")
	rootCmd.Flags().BoolVar(&flagNoPreview, "no-preview", false, "disable the file preview pane")

	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
