package source

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

// Reader loads several log files concurrently.
type Reader struct {
	analyzer    *analyzer.Analyzer
	concurrency int
	logger      *zap.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithConcurrency limits how many files are read at once (default GOMAXPROCS).
func WithConcurrency(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader creates a Reader that parses files with a.
func NewReader(a *analyzer.Analyzer, opts ...ReaderOption) *Reader {
	r := &Reader{
		analyzer:    a,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadAll reads every path and returns one entry list per path, in path order.
// The first failure cancels the remaining reads and is returned.
func (r *Reader) ReadAll(ctx context.Context, paths []string) ([][]analyzer.Entry, error) {
	results := make([][]analyzer.Entry, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			entries, err := r.analyzer.ReadFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Debug("reading log files failed", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("read log files", zap.Int("files", len(paths)))
	return results, nil
}

// ReadMerged reads every path and merges the entries chronologically.
func (r *Reader) ReadMerged(ctx context.Context, paths []string) ([]analyzer.Entry, error) {
	lists, err := r.ReadAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	return Merge(lists...), nil
}
