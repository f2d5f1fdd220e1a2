package services

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// DefaultPrintPoolSize is used when a NamePrinter is built with a non-positive pool size
const DefaultPrintPoolSize = 2

// NamePrinter writes student names to a diagnostic sink in the background
type NamePrinter struct {
	sink     zerolog.Logger
	poolSize int
	mu       sync.Mutex
}

// NewNamePrinter creates a printer writing to sink with at most poolSize concurrent writers
func NewNamePrinter(sink zerolog.Logger, poolSize int) *NamePrinter {
	if poolSize <= 0 {
		poolSize = DefaultPrintPoolSize
	}
	return &NamePrinter{sink: sink, poolSize: poolSize}
}

// PrintConcurrently splits names into chunks and hands them to a bounded worker pool.
// It returns immediately; output order across chunks is unspecified.
func (p *NamePrinter) PrintConcurrently(names []string) {
	chunks := chunkNames(names, p.poolSize)

	go func() {
		workers := pool.New().WithMaxGoroutines(p.poolSize)
		for _, chunk := range chunks {
			workers.Go(func() {
				for _, name := range chunk {
					p.sink.Info().Str("name", name).Msg("student")
				}
			})
		}
		workers.Wait()
	}()
}

// PrintSequentially writes names in order from a single background worker.
// Concurrent calls do not interleave.
func (p *NamePrinter) PrintSequentially(names []string) {
	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, name := range names {
			p.sink.Info().Str("name", name).Msg("student")
		}
	}()
}

// chunkNames partitions names into at most n contiguous, near-equal chunks
func chunkNames(names []string, n int) [][]string {
	if len(names) == 0 {
		return nil
	}
	if n > len(names) {
		n = len(names)
	}

	size := (len(names) + n - 1) / n
	chunks := make([][]string, 0, n)
	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		chunks = append(chunks, names[start:end])
	}
	return chunks
}
