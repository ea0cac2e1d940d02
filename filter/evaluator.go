package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/qbitgate/gateway"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the list length below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *Evaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// Evaluator applies a compiled filter to a torrent listing
type Evaluator struct {
	workerCount int
	batchSize   int
}

// NewEvaluator creates an evaluator sized to GOMAXPROCS
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply returns the torrents matched by filter, in their original order
func (e *Evaluator) Apply(ctx context.Context, filter Filter, torrents []gateway.Torrent) ([]gateway.Torrent, error) {
	if len(torrents) == 0 {
		return []gateway.Torrent{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(torrents) < e.batchSize {
		return evaluateChunk(filter, torrents), nil
	}

	chunkSize := max(len(torrents)/e.workerCount, e.batchSize)
	chunks := make([][]gateway.Torrent, (len(torrents)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(torrents))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateChunk(filter, torrents[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	matches := make([]gateway.Torrent, 0, total)
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	return matches, nil
}

func evaluateChunk(filter Filter, torrents []gateway.Torrent) []gateway.Torrent {
	matches := make([]gateway.Torrent, 0, len(torrents))
	for _, t := range torrents {
		if filter.Match(t) {
			matches = append(matches, t)
		}
	}
	return matches
}
