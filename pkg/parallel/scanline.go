package parallel

import (
	"slicestream/pkg/region"
)

// Scanline is one contiguous run along the innermost axis of a region.
// Start is the absolute coordinate of the run's first element; Length
// is the run's element count, which equals the region's size along
// axis 0.
type Scanline struct {
	Start  []int
	Length int
}

// ForEachScanline visits every scanline of the region in row-major
// order, innermost axis fastest. The Start slice passed to fn is reused
// between calls; fn must copy it if it needs to retain it.
//
// Progress reporting is the caller's concern: report once per completed
// scanline with an increment of the scanline length, not per element,
// to bound reporting overhead.
func ForEachScanline(r region.Spatial, fn func(line Scanline) error) error {
	if r.Dim() == 0 || r.NumPixels() == 0 {
		return nil
	}

	idx := make([]int, r.Dim())
	copy(idx, r.Index)
	length := r.Size[0]
	line := Scanline{Start: idx, Length: length}

	for {
		if err := fn(line); err != nil {
			return err
		}

		// Advance to the next line: axis 0 stays at the region origin,
		// outer axes carry.
		done := true
		for i := 1; i < r.Dim(); i++ {
			idx[i]++
			if idx[i] < r.Index[i]+r.Size[i] {
				done = false
				break
			}
			idx[i] = r.Index[i]
		}
		if done {
			return nil
		}
	}
}

// ReduceIndex builds the lookup index for a lower-dimensional reference
// buffer from a worker's full iteration position: the leading
// participating axes are copied and every non-participating axis is
// zeroed. This is a reduction, not a full index copy; reusing dst
// between lookups without re-zeroing would leak positions from outer
// axes into the reference lookup.
func ReduceIndex(dst, src []int, participating int) {
	for i := range dst {
		if i < participating {
			dst[i] = src[i]
		} else {
			dst[i] = 0
		}
	}
}
