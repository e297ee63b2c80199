package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/disksearch/internal/config"
	"github.com/lumipallolabs/disksearch/internal/core"
	"github.com/lumipallolabs/disksearch/internal/history"
	"github.com/lumipallolabs/disksearch/internal/logging"
	"github.com/lumipallolabs/disksearch/internal/model"
	"github.com/lumipallolabs/disksearch/internal/search"
	"github.com/lumipallolabs/disksearch/internal/stats"
	"github.com/lumipallolabs/disksearch/internal/ui"
)

// searchFlags holds the command line overrides for one search
type searchFlags struct {
	workers   int
	engine    string
	noFollow  bool
	oneFS     bool
	allDrives bool
	tui       bool
	types     bool
	diff      bool
	noHistory bool
	sort      bool
}

// NewSearchCommand creates the 'disksearch search' command
func NewSearchCommand() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search <pattern> [root]",
		Short: "Find entries whose name contains pattern",
		Long: `Search walks root (default: the root of the previous search, or the
current directory) and prints every file or directory whose name contains
pattern, ignoring case. An empty pattern matches everything.

Matched directories are still descended into. Unreadable directories are
skipped silently.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, &f)
		},
	}

	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "number of parallel workers (default from config, else one per CPU)")
	cmd.Flags().StringVar(&f.engine, "engine", "", "search engine: frontier or fastwalk")
	cmd.Flags().BoolVar(&f.noFollow, "no-follow", false, "do not descend into symlinked directories")
	cmd.Flags().BoolVar(&f.oneFS, "one-fs", false, "do not cross filesystem boundaries")
	cmd.Flags().BoolVar(&f.allDrives, "all-drives", false, "search every mounted drive instead of root")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "browse results interactively")
	cmd.Flags().BoolVar(&f.types, "types", false, "show the detected file type of each match")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "show matches added or removed since the last identical search")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not read or write search history")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "sort matches by path")

	return cmd
}

// applyFlags overlays explicitly set flags on cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *searchFlags) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		if f.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", f.workers)
		}
		cfg.Workers = f.workers
	}
	if flags.Changed("engine") {
		cfg.Engine = f.engine
	}
	if flags.Changed("no-follow") {
		cfg.SkipSymlinks = f.noFollow
	}
	if flags.Changed("one-fs") {
		cfg.OneFilesystem = f.oneFS
	}
	if flags.Changed("types") {
		cfg.Output.ShowTypes = f.types
	}
	if f.noHistory {
		cfg.History.Enabled = false
	}
	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, args []string, f *searchFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg, f); err != nil {
		return err
	}
	console := newConsole(cmd, cfg)

	statsMgr := stats.NewManager("")
	if err := statsMgr.Load(); err != nil {
		logging.Debug.Printf("Failed to load stats: %v", err)
	}
	defer statsMgr.Close()

	pattern := args[0]
	roots, err := searchRoots(args, f.allDrives, statsMgr)
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.History.Enabled {
		dir := cfg.History.Dir
		if dir == "" {
			dir = history.DefaultDir()
		}
		store = history.New(dir)
	}

	if f.tui {
		if len(roots) > 1 {
			return fmt.Errorf("--tui searches a single root")
		}
		ctrl, err := newController(cfg, roots[0], pattern, store, statsMgr, true)
		if err != nil {
			return err
		}
		defer ctrl.Stop()
		return ui.Run(ctrl)
	}

	out := cmd.OutOrStdout()
	for _, root := range roots {
		ctrl, err := newController(cfg, root, pattern, store, statsMgr, f.sort)
		if err != nil {
			return err
		}

		console.Debugf("searching %q in %s with %d workers (%s)", pattern, root, cfg.Workers, cfg.Engine)
		result, err := ctrl.Search()
		if err != nil {
			return err
		}

		printMatches(out, result.Matches, cfg.Output.ShowTypes)
		console.Infof("found %d after %s", len(result.Matches), ui.FormatElapsed(result.Elapsed))

		if f.diff {
			if !result.HasDiff {
				console.Warnf("no earlier search for %q in %s to compare with", pattern, root)
			} else {
				printDiff(out, result.Diff)
			}
		}
	}
	return nil
}

func newController(cfg *config.Config, root, pattern string, store *history.Store, statsMgr *stats.Manager, sorted bool) (*core.Controller, error) {
	return core.NewController(core.Options{
		Request: search.Request{
			Root:          root,
			Pattern:       pattern,
			Workers:       cfg.Workers,
			SkipSymlinks:  cfg.SkipSymlinks,
			OneFilesystem: cfg.OneFilesystem,
		},
		Engine:  cfg.Engine,
		Sort:    sorted,
		History: store,
		Keep:    cfg.History.Keep,
		Stats:   statsMgr,
	})
}

// searchRoots picks the roots to search: every drive, the explicit root,
// the previous search's root, or the current directory
func searchRoots(args []string, allDrives bool, statsMgr *stats.Manager) ([]string, error) {
	if allDrives {
		if len(args) > 1 {
			return nil, fmt.Errorf("--all-drives cannot be combined with a root")
		}
		drives, err := model.GetDrives()
		if err != nil {
			return nil, fmt.Errorf("list drives: %w", err)
		}
		if len(drives) == 0 {
			return nil, fmt.Errorf("no drives found")
		}
		return model.DrivePaths(drives), nil
	}
	if len(args) > 1 {
		return []string{args[1]}, nil
	}
	if last := statsMgr.LastRoot(); last != "" {
		return []string{last}, nil
	}
	return []string{"."}, nil
}

// printMatches writes one "[i/n] path" line per match
func printMatches(w io.Writer, matches []*model.Match, types bool) {
	n := len(matches)
	for i, m := range matches {
		if types {
			fmt.Fprintf(w, "[%d/%d] %s  %s\n", i+1, n, m.Path, m.DetectType())
			continue
		}
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, n, m.Path)
	}
}

// printDiff writes added matches with "+" and removed ones with "-"
func printDiff(w io.Writer, d history.Diff) {
	if d.Empty() {
		fmt.Fprintln(w, "no changes since last search")
		return
	}
	for _, p := range d.Added {
		fmt.Fprintf(w, "+ %s\n", p)
	}
	for _, p := range d.Removed {
		fmt.Fprintf(w, "- %s\n", p)
	}
}
