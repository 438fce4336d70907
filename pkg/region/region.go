// Package region provides the value types used for demand negotiation
// between pipeline stages: a rectangular subset of an N-dimensional
// spatial buffer and a contiguous subrange of a 1-D frame sequence.
//
// Regions carry no pixel data. They describe how much of a dataset a
// consumer wants (requested region), how much a producer could ever
// supply (largest-possible region), and how much is currently held in
// memory (buffered region).
package region

import (
	"fmt"
)

// Spatial describes a contiguous rectangular subset of an N-dimensional
// buffer as a per-axis starting index and size. A region whose sizes are
// all zero is the canonical "unset" sentinel used during negotiation.
type Spatial struct {
	// Index is the starting coordinate along each axis.
	Index []int

	// Size is the extent along each axis. Sizes are never negative.
	Size []int
}

// NewSpatial creates a D-dimensional region with all indices and sizes zero.
func NewSpatial(dim int) Spatial {
	return Spatial{
		Index: make([]int, dim),
		Size:  make([]int, dim),
	}
}

// MakeSpatial builds a region from explicit index and size slices.
// The slices are copied so callers may reuse their arguments.
func MakeSpatial(index, size []int) Spatial {
	if len(index) != len(size) {
		panic(fmt.Sprintf("region: index dimension %d does not match size dimension %d",
			len(index), len(size)))
	}
	r := NewSpatial(len(index))
	copy(r.Index, index)
	copy(r.Size, size)
	return r
}

// Dim returns the dimensionality of the region.
func (r Spatial) Dim() int {
	return len(r.Size)
}

// IsZero reports whether the region is the unset sentinel: a region
// with no axis of non-zero size. A zero-dimensional region is zero.
func (r Spatial) IsZero() bool {
	for _, s := range r.Size {
		if s != 0 {
			return false
		}
	}
	return true
}

// NumPixels returns the total number of elements covered by the region.
func (r Spatial) NumPixels() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		n *= s
	}
	return n
}

// Equal reports whether two regions have identical index and size on
// every axis. Regions of different dimensionality are never equal.
func (r Spatial) Equal(o Spatial) bool {
	if len(r.Size) != len(o.Size) {
		return false
	}
	for i := range r.Size {
		if r.Index[i] != o.Index[i] || r.Size[i] != o.Size[i] {
			return false
		}
	}
	return true
}

// Contains reports whether o lies entirely within r on every axis.
func (r Spatial) Contains(o Spatial) bool {
	if len(r.Size) != len(o.Size) {
		return false
	}
	for i := range r.Size {
		if o.Index[i] < r.Index[i] {
			return false
		}
		if o.Index[i]+o.Size[i] > r.Index[i]+r.Size[i] {
			return false
		}
	}
	return true
}

// ContainsIndex reports whether the coordinate idx lies within the region.
func (r Spatial) ContainsIndex(idx []int) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for i := range idx {
		if idx[i] < r.Index[i] || idx[i] >= r.Index[i]+r.Size[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the region.
func (r Spatial) Clone() Spatial {
	return MakeSpatial(r.Index, r.Size)
}

// Slab returns a copy of the region narrowed to a single position along
// the given axis: size[axis] becomes 1 and index[axis] becomes pos. This
// is the sub-region a slice extraction reads for one output frame.
func (r Spatial) Slab(axis, pos int) Spatial {
	s := r.Clone()
	s.Index[axis] = pos
	s.Size[axis] = 1
	return s
}

// Collapse removes the given axis from the region, producing a region of
// one lower dimensionality. The remaining axes keep their original order
// and their index offsets.
func (r Spatial) Collapse(axis int) Spatial {
	out := NewSpatial(r.Dim() - 1)
	j := 0
	for i := range r.Size {
		if i == axis {
			continue
		}
		out.Index[j] = r.Index[i]
		out.Size[j] = r.Size[i]
		j++
	}
	return out
}

// Insert is the inverse of Collapse: it adds an axis at position axis
// with the given index and a size of one, producing a region of one
// higher dimensionality.
func (r Spatial) Insert(axis, pos int) Spatial {
	out := NewSpatial(r.Dim() + 1)
	j := 0
	for i := 0; i < out.Dim(); i++ {
		if i == axis {
			out.Index[i] = pos
			out.Size[i] = 1
			continue
		}
		out.Index[i] = r.Index[j]
		out.Size[i] = r.Size[j]
		j++
	}
	return out
}

// String renders the region as index+size pairs for diagnostics.
func (r Spatial) String() string {
	return fmt.Sprintf("Spatial{Index:%v Size:%v}", r.Index, r.Size)
}

// Temporal describes a contiguous run of frame indices as a half-open
// interval [Start, Start+Duration).
type Temporal struct {
	// Start is the first frame index in the range.
	Start int

	// Duration is the number of frames. Never negative; zero marks the
	// unset sentinel.
	Duration int
}

// IsZero reports whether the range covers no frames.
func (t Temporal) IsZero() bool {
	return t.Duration == 0
}

// End returns the exclusive upper bound of the range.
func (t Temporal) End() int {
	return t.Start + t.Duration
}

// Equal reports whether two temporal regions match exactly.
func (t Temporal) Equal(o Temporal) bool {
	return t.Start == o.Start && t.Duration == o.Duration
}

// Contains reports whether the frame index lies inside the range.
func (t Temporal) Contains(frame int) bool {
	return frame >= t.Start && frame < t.End()
}

// String renders the range for diagnostics.
func (t Temporal) String() string {
	return fmt.Sprintf("Temporal{Start:%d Duration:%d}", t.Start, t.Duration)
}
