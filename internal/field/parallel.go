package field

import "sync"

// minChunk is the fewest rows a worker gets in the parallel edge pass.
const minChunk = 32

type edgeChunk struct {
	edges []Edge
	lines []float64
}

// ParallelFor runs fn over [0, n) split into at most workers contiguous
// chunks and returns how many chunks it used. Chunk w covers rows before
// chunk w+1. Small ranges run inline as a single chunk.
func ParallelFor(n, minChunk, workers int, fn func(w, start, end int)) int {
	if n <= minChunk || workers <= 1 {
		fn(0, 0, n)
		return 1
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := min(w*chunkSize, n)
		end := min(start+chunkSize, n)

		go func(w, s, e int) {
			defer wg.Done()
			fn(w, s, e)
		}(w, start, end)
	}

	wg.Wait()
	return workers
}

// connectParallel scans row chunks concurrently into per-worker buffers and
// joins them in chunk order, which keeps edges sorted by i then j.
func (f *Field) connectParallel(workers int) {
	if len(f.chunks) < workers {
		f.chunks = append(f.chunks, make([]edgeChunk, workers-len(f.chunks))...)
	}

	used := ParallelFor(len(f.particles), minChunk, workers, func(w, start, end int) {
		c := &f.chunks[w]
		c.edges, c.lines = f.scanRows(start, end, c.edges[:0], c.lines[:0])
	})

	f.edges = f.edges[:0]
	f.lines = f.lines[:0]
	for _, c := range f.chunks[:used] {
		f.edges = append(f.edges, c.edges...)
		f.lines = append(f.lines, c.lines...)
	}
}
