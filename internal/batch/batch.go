// Package batch validates every metadata file of a directory.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/metadata"
	"github.com/spraakbanken/lexmeta/source"
)

// ErrNotADirectory is returned when the batch target is not a directory.
var ErrNotADirectory = errors.New("not a directory")

type Options struct {
	// Glob is matched against file names inside the directory.
	Glob string
	// KeepGoing continues after a failing file.
	KeepGoing bool
	ParseOpt  lexmeta.ParseOpt
}

// FileResult is the outcome of one file. Issues holds validation problems
// (including duplicate keys); Err holds failures to read or decode the file.
type FileResult struct {
	Path   string
	Issues lexmeta.Issues
	Err    error
}

func (r FileResult) OK() bool { return r.Err == nil && len(r.Issues) == 0 }

type Report struct {
	Files []FileResult
	// Aborted is set when the run stopped at a failing file.
	Aborted bool
}

// Failed lists the failing files in processing order.
func (r *Report) Failed() []FileResult {
	return collections.SliceFilter(r.Files, func(f FileResult, _ int) bool { return !f.OK() })
}

func (r *Report) OK() bool { return len(r.Failed()) == 0 }

type Runner struct {
	opts    Options
	metrics *Metrics
}

// NewRunner creates a Runner. m may be nil.
func NewRunner(opts Options, m *Metrics) *Runner {
	if opts.Glob == "" {
		opts.Glob = "*yaml"
	}
	return &Runner{opts: opts, metrics: m}
}

// Files lists the files of dir matching the glob, sorted by name.
func (r *Runner) Files(dir string) ([]string, error) {
	isDir, err := fs.IsDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}
	matches, err := filepath.Glob(filepath.Join(dir, r.opts.Glob))
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", r.opts.Glob, err)
	}
	files := collections.SliceFilter(matches, func(p string, _ int) bool {
		isFile, err := fs.IsFile(p)
		return err == nil && isFile
	})
	sort.Strings(files)
	return files, nil
}

// Run validates the files of dir. Validation failures end up in the report;
// the returned error is reserved for a bad directory or a cancelled context.
func (r *Runner) Run(ctx context.Context, dir string) (*Report, error) {
	logger := log.With().Str("component", "batch").Str("dir", dir).Logger()
	files, err := r.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn().Str("glob", r.opts.Glob).Msg("no files matched")
	}
	rep := &Report{Files: make([]FileResult, 0, len(files))}
	for _, p := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := r.validateFile(ctx, p, logger)
		rep.Files = append(rep.Files, res)
		if !res.OK() && !r.opts.KeepGoing {
			rep.Aborted = true
			logger.Error().Str("file", p).Msg("stopping at first failing file")
			break
		}
	}
	failed := len(rep.Failed())
	logger.Info().
		Int("files", len(rep.Files)).
		Int("failed", failed).
		Bool("aborted", rep.Aborted).
		Msg("batch finished")
	return rep, nil
}

// ValidateFile reads and validates a single file.
func (r *Runner) ValidateFile(ctx context.Context, path string) FileResult {
	return r.validateFile(ctx, path, log.With().Str("component", "batch").Logger())
}

func (r *Runner) validateFile(ctx context.Context, path string, logger zerolog.Logger) FileResult {
	start := time.Now()
	res := FileResult{Path: path}
	doc, err := source.ReadFile(path)
	if err != nil {
		var dup *source.DuplicateKeyError
		if errors.As(err, &dup) {
			res.Issues = dup.Issues()
		} else {
			res.Err = err
		}
	} else if _, err := metadata.Parse(ctx, doc, r.opts.ParseOpt); err != nil {
		if iss, ok := lexmeta.AsIssues(err); ok {
			res.Issues = iss
		} else {
			res.Err = err
		}
	}
	r.observe(res, time.Since(start))

	switch {
	case res.Err != nil:
		logger.Error().Err(res.Err).Str("file", path).Msg("failed to read metadata")
	case len(res.Issues) > 0:
		logger.Warn().
			Str("file", path).
			Int("issues", len(res.Issues)).
			Strs("paths", res.Issues.Paths()).
			Msg("invalid metadata")
	default:
		logger.Debug().Str("file", path).Msg("valid")
	}
	return res
}

func (r *Runner) observe(res FileResult, took time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.ValidationDuration.Observe(took.Seconds())
	switch {
	case res.Err != nil:
		r.metrics.FilesTotal.WithLabelValues(ResultError).Inc()
	case len(res.Issues) > 0:
		r.metrics.FilesTotal.WithLabelValues(ResultInvalid).Inc()
	default:
		r.metrics.FilesTotal.WithLabelValues(ResultValid).Inc()
	}
	for _, it := range res.Issues {
		r.metrics.IssuesTotal.WithLabelValues(it.Code).Inc()
	}
}
