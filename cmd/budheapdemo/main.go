// Command budheapdemo drives a budheap.Heap through a representative
// allocate/free scenario over an mmap'd pool and logs the outcome. It is
// intentionally thin: all allocator correctness lives in package budheap.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"go.uber.org/zap"

	"github.com/cwnelson/budheap/src/budheap"
)

func main() {
	poolSize := flag.Int("pool-size", 2097152, "size in bytes of the backing pool to mmap")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "budheapdemo: failed to init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *poolSize); err != nil {
		logger.Error("demo run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, poolSize int) error {
	pool, err := budheap.NewMmapPool(poolSize)
	if err != nil {
		return fmt.Errorf("mmap pool: %w", err)
	}
	defer func() {
		if err := budheap.MunmapPool(pool); err != nil {
			logger.Warn("munmap failed", zap.Error(err))
		}
	}()

	var h budheap.Heap
	h.Init(budheap.PoolPointer(pool), len(pool))
	logger.Info("heap initialized", zap.Int("pool_size", poolSize))

	requests := []int{512000, 511000, 26000}
	ptrs := make([]unsafe.Pointer, 0, len(requests))

	for _, n := range requests {
		p := h.Alloc(n)
		if p == nil {
			logger.Warn("allocation failed", zap.Int("requested_bytes", n))
			continue
		}
		logger.Info("allocated", zap.Int("requested_bytes", n))
		ptrs = append(ptrs, p)
	}

	logger.Info("outstanding allocations", zap.Int("count", h.Done()))

	for _, p := range ptrs {
		if !h.Free(p) {
			logger.Warn("free rejected an allocation it handed out")
		}
	}

	logger.Info("outstanding allocations after freeing", zap.Int("count", h.Done()))
	return nil
}
