package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/lang"
)

// Runner parses files with the languages of a registry.
type Runner struct {
	registry *lang.Registry
}

// New creates a Runner. A nil registry means lang.DefaultRegistry.
func New(registry *lang.Registry) *Runner {
	if registry == nil {
		registry = lang.DefaultRegistry
	}
	return &Runner{registry: registry}
}

// Registry returns the registry the runner resolves languages from.
func (r *Runner) Registry() *lang.Registry {
	return r.registry
}

// Run discovers files under opts.Paths and parses them with a worker pool.
// Outcomes are returned in path order whatever order workers finish in. A
// cancelled context stops the run and returns the outcomes collected so far
// together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if opts.Language != "" {
		if _, err := r.registry.Get(opts.Language); err != nil {
			return nil, err
		}
	}

	files, err := r.Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	var shared *green.SyncCache
	if opts.SharedCache {
		shared = green.NewSyncCache()
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts, shared, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	if shared != nil {
		result.Stats.Cache = shared.Stats()
	}
	result.Stats.Duration = time.Since(start)

	logger.Debug("run finished",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldCacheHitRate, result.Stats.Cache.HitRate(),
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	opts Options,
	shared *green.SyncCache,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		var outcome FileOutcome
		if shared != nil {
			outcome = r.ParseFile(ctx, path, opts.Language, shared)
		} else {
			private := green.NewCache()
			outcome = r.ParseFile(ctx, path, opts.Language, private)
			outcome.cache = private.Stats()
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ParseFile reads and parses one file. An empty language name means detect
// from the path and content.
func (r *Runner) ParseFile(ctx context.Context, path, language string, cache green.Interner) FileOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("read %s: %w", path, err)}
	}
	return r.ParseSource(ctx, path, content, language, cache)
}

// ParseSource parses content already in memory. name is used for language
// detection and reporting.
func (r *Runner) ParseSource(ctx context.Context, name string, content []byte, language string, cache green.Interner) FileOutcome {
	outcome := FileOutcome{Path: name}

	lng, err := r.resolve(name, content, language)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Language = lng

	start := time.Now()
	root, err := lng.Parse(ctx, content, cache)
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", name, err)
		return outcome
	}

	outcome.Root = root
	outcome.Stats = Measure(root, lng)

	logging.FromContext(ctx).Debug("parsed",
		logging.FieldPath, name,
		logging.FieldLanguage, lng.Name(),
		logging.FieldBytes, outcome.Stats.Bytes,
		logging.FieldNodes, outcome.Stats.Nodes,
		logging.FieldDuration, outcome.Duration,
	)
	return outcome
}

func (r *Runner) resolve(name string, content []byte, language string) (lang.Language, error) {
	if language != "" {
		return r.registry.Get(language)
	}
	if lng, ok := r.registry.Detect(name, content); ok {
		return lng, nil
	}
	return nil, fmt.Errorf("%w: cannot detect language of %s", lang.ErrUnknownLanguage, name)
}
