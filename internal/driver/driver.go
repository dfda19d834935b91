package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"luamend/internal/project"
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Path is the input file, relative to the run root when the run
	// covers a directory.
	Path string
	// InputPath is the path the file was read from.
	InputPath string
	// OutputPath is where the result was written.
	OutputPath string
	// Err is the failure, nil on success.
	Err error
	// Cached reports a disk-cache hit.
	Cached bool
	// Duration is the processing wall time.
	Duration time.Duration
}

// Summary aggregates a run.
type Summary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
	Cached    int
}

// Runner executes processing runs for one configuration.
type Runner struct {
	config *project.Config
	opts   Options
	cache  *DiskCache
	// OnResult, when set, receives each result as it completes. Calls
	// may come from multiple goroutines.
	OnResult func(FileResult)
}

// NewRunner builds a runner. The disk cache is optional; a nil cache
// simply processes everything.
func NewRunner(config *project.Config, opts Options) *Runner {
	r := &Runner{config: config, opts: opts}
	if !opts.NoCache {
		// A cache that fails to open is not fatal.
		if cache, err := OpenDiskCache("luamend"); err == nil {
			r.cache = cache
		}
	}
	return r
}

// Run processes path, which may be a file or a directory.
func (r *Runner) Run(ctx context.Context, path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return r.runDir(ctx, path)
	}
	result := r.processFile(path, path, filepath.Base(path))
	summary := &Summary{Results: []FileResult{result}}
	summary.count(result)
	if r.OnResult != nil {
		r.OnResult(result)
	}
	return summary, nil
}

func (s *Summary) count(result FileResult) {
	if result.Err != nil {
		s.Failed++
		return
	}
	s.Succeeded++
	if result.Cached {
		s.Cached++
	}
}

// ListFiles returns the files under root selected by the configuration,
// sorted for deterministic order.
func (r *Runner) ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if r.config.Matches(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) runDir(ctx context.Context, root string) (*Summary, error) {
	files, err := r.ListFiles(root)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(files))

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outRel := rel
			outRoot := root
			if r.opts.Output != "" {
				outRoot = r.opts.Output
			}
			results[i] = r.processFile(filepath.Join(root, rel), filepath.Join(outRoot, outRel), rel)
			if r.OnResult != nil {
				r.OnResult(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results}
	for _, result := range results {
		summary.count(result)
	}
	return summary, nil
}

// processFile runs the pipeline for one file, consulting the cache
// first. Failures land in the result instead of aborting the run.
func (r *Runner) processFile(inputPath, outputPath, displayPath string) FileResult {
	start := time.Now()
	result := FileResult{Path: displayPath, InputPath: inputPath, OutputPath: outputPath}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	src := string(data)

	key := cacheKey(src, r.config, r.opts)
	if payload, ok, err := r.cache.Get(key); err == nil && ok {
		result.Cached = true
		result.Err = writeOutput(outputPath, payload.Output)
		result.Duration = time.Since(start)
		return result
	}

	chain, err := r.config.BuildRules()
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	output, err := ProcessSource(src, chain, r.opts)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", displayPath, err)
		result.Duration = time.Since(start)
		return result
	}

	if err := writeOutput(outputPath, output); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	// A failed cache write never fails the run.
	_ = r.cache.Put(key, &CachePayload{Schema: cacheSchemaVersion, Output: output})
	result.Duration = time.Since(start)
	return result
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
