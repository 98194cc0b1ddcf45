/*
Package workers sizes and bounds CPU-heavy work such as thumbnail rendering.

Worker counts are derived from GOMAXPROCS rather than runtime.NumCPU, so a
pod limited to 2 CPUs on a 64-core node gets 2 workers, not 64:

	n := workers.ForCPU(8) // 1 per CPU, at most 8

Operators can pin the count with THUMBNAIL_WORKERS; the limit still applies.

A Limiter turns the count into a concurrency bound. Each render holds one
slot while it decodes, resizes and encodes, which caps the memory used by
concurrent decodes:

	lim := workers.NewLimiter(workers.ForCPU(8))
	if err := lim.Acquire(ctx); err != nil {
		return // client went away while queued
	}
	defer lim.Release()
*/
package workers
