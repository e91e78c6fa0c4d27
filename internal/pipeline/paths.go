package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Mode selects what FormatPaths does with changed documents.
type Mode struct {
	Write bool // rewrite changed files in place
	Check bool // report only; never write
}

// FormatPaths formats every file independently, bounded by the configured
// job count. One document's abort never affects the others; per-file
// outcomes, including read and write errors, land in that file's Result.
func FormatPaths(ctx context.Context, paths []string, opts Options, mode Mode) []Result {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Config.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			res := FormatDocument(ctx, path, string(data), opts)
			if res.Err == nil && res.Changed && mode.Write && !mode.Check {
				if err := writeFileAtomic(path, res.Output, 0644); err != nil {
					res.Err = err
				}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; outcomes are in results
	return results
}

// ExpandPaths resolves the argument list into script files: files are kept
// as-is, directories are walked for .rpy files. Exclude globs match against
// the slash-separated path and the base name.
func ExpandPaths(args []string, exclude []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".rpy") {
				return nil
			}
			if excluded(path, exclude) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range exclude {
		if ok, _ := filepath.Match(g, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(g, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
