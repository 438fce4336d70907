// Package normalize divides an image by a reference line, the
// per-element transform ultrasound spectra pipelines apply before
// comparison: every scanline of the input is divided element-wise by a
// reference buffer that varies only along the leading (depth) axis.
//
// The filter is the package's demonstration of the region-partitioned
// execution discipline in pkg/parallel: the requested region is split
// into disjoint sub-regions, one pool work unit each, and every worker
// walks its sub-region scanline by scanline, reporting progress once
// per completed line.
package normalize

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slicestream/pkg/dataset"
	"slicestream/pkg/parallel"
	"slicestream/pkg/region"
)

// Filter divides an input image by a reference line buffer. The
// reference has the input's dimensionality but extends only along the
// leading axis; lookups into it use an index reduced to that axis, all
// other axes zeroed. Where the reference is zero the output is zero,
// never an error.
type Filter struct {
	input     *dataset.Image
	reference *dataset.Image
	output    *dataset.Image

	workers  int
	progress *parallel.Progress
}

// NewFilter creates a filter running the given number of parallel
// workers. Non-positive counts fall back to one.
func NewFilter(workers int) *Filter {
	if workers <= 0 {
		workers = 1
	}
	return &Filter{workers: workers}
}

// SetInput connects the image to be normalized.
func (f *Filter) SetInput(input *dataset.Image) {
	f.input = input
}

// SetReference connects the reference line buffer.
func (f *Filter) SetReference(reference *dataset.Image) {
	f.reference = reference
}

// SetOutput connects the destination image. It must cover the input's
// requested region.
func (f *Filter) SetOutput(output *dataset.Image) {
	f.output = output
}

// SetProgress installs a progress reporter. Workers add one scanline
// length per completed line.
func (f *Filter) SetProgress(p *parallel.Progress) {
	f.progress = p
}

// Run executes the filter over the input's requested region. The
// region is partitioned across the filter's workers; each worker owns
// its output sub-region exclusively and shares only read-only inputs,
// so a failing worker cannot corrupt another worker's pixels.
func (f *Filter) Run(ctx context.Context) error {
	if f.input == nil || f.reference == nil || f.output == nil {
		return fmt.Errorf("normalize: input, reference and output must all be connected")
	}
	if f.reference.Dim() != f.input.Dim() {
		return fmt.Errorf("normalize: reference dimension %d does not match input dimension %d",
			f.reference.Dim(), f.input.Dim())
	}

	// Request the entire reference line rather than cropping it to the
	// processed region; the line is small and this keeps the request
	// logic trivial.
	if err := f.reference.SetRequestedRegion(f.reference.LargestPossibleRegion()); err != nil {
		return err
	}

	work := f.input.RequestedRegion()
	if !f.output.LargestPossibleRegion().Contains(work) {
		return fmt.Errorf("normalize: output extent %v does not cover processed region %v",
			f.output.LargestPossibleRegion(), work)
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	pool := parallel.NewPool(f.workers, f.workers, func(_ context.Context, sub region.Spatial) error {
		err := f.processRegion(sub)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
		return err
	})
	if err := pool.Start(ctx); err != nil {
		return err
	}
	for _, sub := range parallel.SplitRegion(work, f.workers) {
		if err := pool.Submit(sub); err != nil {
			return err
		}
	}
	if err := pool.Stop(time.Minute); err != nil {
		return err
	}
	return firstErr
}

// processRegion is one worker's unit of work: scanline iteration over
// its sub-region with a reduced-index reference lookup per element.
func (f *Filter) processRegion(sub region.Spatial) error {
	refRegion := f.reference.LargestPossibleRegion()
	refIdx := make([]int, refRegion.Dim())
	idx := make([]int, sub.Dim())

	return parallel.ForEachScanline(sub, func(line parallel.Scanline) error {
		copy(idx, line.Start)
		for i := 0; i < line.Length; i++ {
			idx[0] = line.Start[0] + i

			// Reference lookup participates only in the leading axis.
			parallel.ReduceIndex(refIdx, idx, 1)
			if !refRegion.ContainsIndex(refIdx) {
				return fmt.Errorf("normalize: reference index %v outside reference extent %v",
					refIdx, refRegion)
			}

			ref := f.reference.At(refIdx...)
			if ref == 0 {
				f.output.Set(0, idx...)
			} else {
				f.output.Set(f.input.At(idx...)/ref, idx...)
			}
		}
		if f.progress != nil {
			f.progress.Add(line.Length)
		}
		return nil
	})
}
