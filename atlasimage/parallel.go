package atlasimage

import (
	"runtime"
	"sync"
)

// Parallel calls fn(i) for every i in [0, n), splitting the range into
// runtime.NumCPU() contiguous batches run on separate goroutines. Ranges
// smaller than the CPU count run sequentially on the caller's goroutine
// instead of paying for goroutine setup.
//
// Grounded on the teacher's unpack.go Parallel, generalized from a
// zero-argument closure over a shared index to an explicit per-call index so
// callers can write directly into pre-sized slices without their own
// synchronization.
func Parallel(n int, fn func(i int)) {
	workers := runtime.NumCPU()
	if n < workers {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	batchSize := (n + workers - 1) / workers
	if batchSize < 1 {
		batchSize = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
