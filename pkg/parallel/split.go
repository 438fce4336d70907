// Package parallel provides the execution discipline for stages that
// process large regions by dividing them into sub-regions dispatched to
// worker goroutines: region partitioning, scanline iteration with
// per-scanline progress reporting, and a generic worker pool.
//
// The partitioning policy splits along the outermost axis so that
// sub-regions are contiguous in memory and trivially disjoint; workers
// share only read-only inputs and their own output sub-region, so they
// need no synchronization beyond the pool's dispatch.
package parallel

import (
	"slicestream/pkg/region"
)

// SplitRegion divides a region into at most n disjoint sub-regions that
// together cover it exactly. The split runs along the outermost axis;
// when that axis has fewer positions than n, fewer sub-regions are
// returned, each of at least one position. A region with no pixels
// yields no sub-regions.
func SplitRegion(r region.Spatial, n int) []region.Spatial {
	if n < 1 {
		n = 1
	}
	if r.Dim() == 0 || r.NumPixels() == 0 {
		return nil
	}

	axis := r.Dim() - 1
	extent := r.Size[axis]
	if n > extent {
		n = extent
	}

	// Ceiling division so every position along the axis is covered.
	per := (extent + n - 1) / n

	out := make([]region.Spatial, 0, n)
	for start := 0; start < extent; start += per {
		sub := r.Clone()
		sub.Index[axis] = r.Index[axis] + start
		sub.Size[axis] = min(per, extent-start)
		out = append(out, sub)
	}
	return out
}
