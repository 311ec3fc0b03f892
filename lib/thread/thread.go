/*package thread contains functions useful for multi-threading: choosing how
many threads to use and splitting loops across them.*/
package thread

import (
	"fmt"
	"runtime"
	"sync"
)

// Set sets the number of threads used by the program. n = -1 uses every
// core on the machine.
func Set(n int) error {
	if n == -1 { n = runtime.NumCPU() }

	if n > runtime.NumCPU() {
		return fmt.Errorf("%d threads requested, but your system only has " +
			"%d cores. If you want to use the maximum number of threads, " +
			"set Threads = -1.", n, runtime.NumCPU())
	} else if n <= 0 {
		return fmt.Errorf("%d threads requested, but at least one is needed. " +
			"If you want to use the maximum number of threads, set " +
			"Threads = -1.", n)
	}

	runtime.GOMAXPROCS(n)
	return nil
}

// Workers returns the number of threads that loops will be split across.
func Workers() int { return runtime.GOMAXPROCS(0) }

// Split divides the range [0, n) into at most parts contiguous chunks of
// near-equal size and returns their [start, end) bounds. Empty chunks are
// not returned.
func Split(n, parts int) [][2]int {
	if parts < 1 {
		panic(fmt.Sprintf("Cannot split a range into %d parts.", parts))
	}
	if parts > n { parts = n }

	out := make([][2]int, 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		end := start + n/parts
		if i < n % parts { end++ }
		out = append(out, [2]int{ start, end })
		start = end
	}
	return out
}

// For calls f once for every chunk of Split(n, Workers()), each in its own
// goroutine, and returns once all of them have finished.
func For(n int, f func(start, end int)) {
	chunks := Split(n, Workers())
	if len(chunks) == 1 {
		f(chunks[0][0], chunks[0][1])
		return
	}

	wg := sync.WaitGroup{ }
	wg.Add(len(chunks))
	for _, c := range chunks {
		go func(start, end int) {
			defer wg.Done()
			f(start, end)
		}(c[0], c[1])
	}
	wg.Wait()
}
