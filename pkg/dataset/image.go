// Package dataset provides the in-memory dataset handles the pipeline
// negotiates over: an Image holding an N-dimensional spatial buffer and
// a VideoStream holding a temporal sequence of (N-1)-dimensional frames.
//
// Each handle carries the three kinds of region the propagation protocol
// distinguishes: the largest-possible region (what could ever be
// produced), the requested region (what downstream demand needs) and the
// buffered region (what is currently materialized). Handles are created
// and owned by the surrounding pipeline; filters hold non-owning
// references to them between a connect and a disconnect.
package dataset

import (
	"fmt"

	"slicestream/pkg/region"
)

// Image is an N-dimensional spatial buffer with region metadata. Pixel
// data is stored as a flat array in row-major order over the largest
// possible region, innermost (first) axis varying fastest.
type Image struct {
	largest   region.Spatial
	requested region.Spatial
	data      []float64
}

// NewImage creates an image whose largest possible region starts at the
// origin with the given per-axis sizes. The buffer is allocated
// immediately and zero-filled; the requested region starts out equal to
// the largest possible region.
func NewImage(size ...int) *Image {
	r := region.MakeSpatial(make([]int, len(size)), size)
	return NewImageWithRegion(r)
}

// NewImageWithRegion creates an image covering the given largest
// possible region, which may start away from the origin.
func NewImageWithRegion(largest region.Spatial) *Image {
	return &Image{
		largest:   largest.Clone(),
		requested: largest.Clone(),
		data:      make([]float64, largest.NumPixels()),
	}
}

// Dim returns the image's dimensionality.
func (im *Image) Dim() int {
	return im.largest.Dim()
}

// LargestPossibleRegion returns the maximal extent the image can produce.
func (im *Image) LargestPossibleRegion() region.Spatial {
	return im.largest.Clone()
}

// RequestedRegion returns the subset currently requested by downstream
// demand.
func (im *Image) RequestedRegion() region.Spatial {
	return im.requested.Clone()
}

// SetRequestedRegion narrows the requested region. Requests are clipped
// to the largest possible region; a requested region can never grow
// beyond what the image could produce.
func (im *Image) SetRequestedRegion(r region.Spatial) error {
	if r.Dim() != im.largest.Dim() {
		return fmt.Errorf("dataset: requested region dimension %d does not match image dimension %d",
			r.Dim(), im.largest.Dim())
	}
	clipped := r.Clone()
	for i := range clipped.Size {
		lo := max(clipped.Index[i], im.largest.Index[i])
		hi := min(clipped.Index[i]+clipped.Size[i], im.largest.Index[i]+im.largest.Size[i])
		clipped.Index[i] = lo
		clipped.Size[i] = max(hi-lo, 0)
	}
	im.requested = clipped
	return nil
}

// offset converts an absolute N-dimensional coordinate into a flat
// position in the pixel buffer.
func (im *Image) offset(idx []int) int {
	off := 0
	stride := 1
	for i := 0; i < im.largest.Dim(); i++ {
		off += (idx[i] - im.largest.Index[i]) * stride
		stride *= im.largest.Size[i]
	}
	return off
}

// At returns the pixel value at the given absolute coordinate.
func (im *Image) At(idx ...int) float64 {
	return im.data[im.offset(idx)]
}

// Set stores a pixel value at the given absolute coordinate.
func (im *Image) Set(v float64, idx ...int) {
	im.data[im.offset(idx)] = v
}

// Data exposes the raw pixel buffer over the largest possible region.
// Callers must treat it as read-only while a pipeline update is running.
func (im *Image) Data() []float64 {
	return im.data
}

// ReadSlice copies the pixels covered by r out of the image in row-major
// order, innermost axis fastest. The region must lie within the image's
// largest possible region.
func (im *Image) ReadSlice(r region.Spatial) ([]float64, error) {
	if !im.largest.Contains(r) {
		return nil, fmt.Errorf("dataset: slice region %v outside image extent %v", r, im.largest)
	}
	out := make([]float64, r.NumPixels())
	idx := make([]int, r.Dim())
	copy(idx, r.Index)
	for i := range out {
		out[i] = im.data[im.offset(idx)]
		increment(idx, r)
	}
	return out, nil
}

// WriteSlice copies a flat pixel run back into the image over the
// region r, the inverse of ReadSlice.
func (im *Image) WriteSlice(r region.Spatial, data []float64) error {
	if !im.largest.Contains(r) {
		return fmt.Errorf("dataset: slice region %v outside image extent %v", r, im.largest)
	}
	if len(data) != r.NumPixels() {
		return fmt.Errorf("dataset: slice data length %d does not cover region of %d pixels",
			len(data), r.NumPixels())
	}
	idx := make([]int, r.Dim())
	copy(idx, r.Index)
	for i := range data {
		im.data[im.offset(idx)] = data[i]
		increment(idx, r)
	}
	return nil
}

// increment advances an absolute coordinate one step through r in
// row-major order, innermost axis first.
func increment(idx []int, r region.Spatial) {
	for i := 0; i < r.Dim(); i++ {
		idx[i]++
		if idx[i] < r.Index[i]+r.Size[i] {
			return
		}
		idx[i] = r.Index[i]
	}
}
