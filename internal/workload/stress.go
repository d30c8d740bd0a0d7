package workload

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/kernels"
)

// Stress runs every compute and memory kernel once per iteration on a
// freshly reset working set.
type Stress struct {
	base
	p StressParams
}

// NewStress returns the stress workload.
func NewStress(p StressParams, logger *slog.Logger) *Stress {
	return &Stress{base: newBase("stress", logger), p: p}
}

func (s *Stress) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("=== Stress Test Workload ===")
	c.printf("Duration: %d iterations\n", s.p.Iterations)
	c.printf("Matrix Size: %dx%d\n", s.p.MatrixSize, s.p.MatrixSize)
	c.printf("Array Size: %d elements\n", s.p.ArraySize)
	c.printf("Hash Table Size: %d entries\n\n", s.p.HashTableSize)
	c.println("WARNING: This test generates maximum computational load")
	c.println("         and sustained peak power consumption.\n")
	return c.err
}

func (s *Stress) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := s.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := s.p

	buf := kernels.NewBuffers(p.MatrixSize, p.ArraySize, p.HashTableSize)
	n := int64(p.MatrixSize)
	array := int64(p.ArraySize)
	span := p.sortSpan()

	var ops, matmuls, sorts, hashOps, memAccesses int64
	var checksum uint32

	c.println("Starting stress test...\n")
	for iter := 0; iter < p.Iterations; iter++ {
		if err := s.checkpoint(ctx, iter); err != nil {
			return nil, err
		}
		c.printf("Iteration %d/%d: Running combined stress...\n", iter+1, p.Iterations)
		buf.Reset()

		if err := kernels.MatMul(buf.A, buf.B, buf.C); err != nil {
			return nil, fmt.Errorf("stress iteration %d: %w", iter, err)
		}
		matmuls++
		ops += n * n * n

		kernels.BubbleSort(buf.Sort[:span])
		sorts++
		memAccesses += array * array / 16

		h := kernels.HashTableStress(buf.Table, p.HashIterations)
		hashOps += int64(p.HashIterations)
		ops += int64(p.HashIterations)

		kernels.RotateCopy(buf.Dst, buf.Src)
		memAccesses += array

		r := kernels.RandomAccess(buf.Sort, p.RandomAccesses)
		memAccesses += int64(p.RandomAccesses)

		f := kernels.Fib(uint32(p.FibN))
		checksum += uint32(int32(buf.C.At(0, 0))) + h + r + f
		s.logger.Debug("iteration complete", "iteration", iter, "hash", h, "random", r)

		if (iter+1)%p.ReportEvery == 0 {
			c.printf("  Progress: %d%% complete\n", (iter+1)*100/p.Iterations)
			c.printf("  Total Operations: %d\n", ops)
			c.printf("  Memory Accesses: %d\n\n", memAccesses)
		}
	}

	iters := int64(p.Iterations)
	c.println("\n=== Stress Test Complete ===")
	c.printf("Total Operations: %d\n", ops)
	c.printf("Matrix Multiplications: %d\n", matmuls)
	c.printf("Array Sorts: %d\n", sorts)
	c.printf("Hash Operations: %d\n", hashOps)
	c.printf("Memory Accesses: %d\n", memAccesses)
	c.printf("Average Operations per Iteration: %d\n", ops/iters)
	c.printf("Average Memory Accesses per Iteration: %d\n", memAccesses/iters)
	c.printf("Checksum: 0x%08x\n", checksum)
	if c.err != nil {
		return nil, c.err
	}

	sum := newSummary(s.name)
	sum.count("total_operations", ops)
	sum.count("matrix_multiplications", matmuls)
	sum.count("array_sorts", sorts)
	sum.count("hash_operations", hashOps)
	sum.count("memory_accesses", memAccesses)
	sum.count("checksum", int64(checksum))
	return sum.sealed()
}
