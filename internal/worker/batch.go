package worker

import (
	"context"
	"sort"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// Processor turns one fetched item into a run log entry. Implemented by
// the pipeline; defined here so the pool stays free of pipeline imports.
type Processor interface {
	ProcessItem(ctx context.Context, item model.Item) (*model.RunEntry, error)
}

// ItemJob processes a single item on the pool.
type ItemJob struct {
	Item      model.Item
	Processor Processor
}

// ItemResult is the outcome of one item job.
type ItemResult struct {
	ID    string
	Entry *model.RunEntry
	Err   error
}

// GetError returns the job error, if any.
func (r *ItemResult) GetError() error {
	return r.Err
}

// Execute runs the processor for the job's item.
func (j *ItemJob) Execute(ctx context.Context) Result {
	entry, err := j.Processor.ProcessItem(ctx, j.Item)
	return &ItemResult{
		ID:    j.Item.ID,
		Entry: entry,
		Err:   err,
	}
}

// BatchProcessor fans a batch of items across the pool. Items are
// independent, so this is a plain parallel map.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given parallelism.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessItems processes items concurrently and returns the results
// sorted by item id for reproducible run logs.
func (b *BatchProcessor) ProcessItems(ctx context.Context, items []model.Item) []*ItemResult {
	if len(items) == 0 {
		return []*ItemResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Caller cancellation tears the pool down mid-batch.
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	// Drain while submitting so batches larger than the channel buffers
	// cannot wedge the submit loop.
	collector := NewResultCollector()
	done := make(chan struct{})
	go collector.Collect(pool, done)

	for _, item := range items {
		pool.Submit(&ItemJob{Item: item, Processor: b.processor})
	}

	pool.Close()
	<-done

	raw := collector.Results()
	results := make([]*ItemResult, 0, len(raw))
	for _, r := range raw {
		if ir, ok := r.(*ItemResult); ok {
			results = append(results, ir)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}
