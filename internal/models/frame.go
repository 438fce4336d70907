package models

import (
	"slicestream/pkg/region"
)

// Frame represents a single (D-1)-dimensional spatial buffer at one
// position along the temporal axis of a video stream.
type Frame struct {
	// Data is the frame's pixel data as a flat array in row-major order
	// over the buffered region, innermost axis fastest.
	Data []float64

	// Index is the position of this frame in the temporal sequence.
	Index int

	// LargestPossibleRegion is the maximal spatial extent this frame
	// could ever hold, set during information propagation.
	LargestPossibleRegion region.Spatial

	// RequestedRegion is the spatial subset downstream demand asks for.
	// A zero-size region means "nothing specific yet".
	RequestedRegion region.Spatial

	// BufferedRegion is the spatial subset currently materialized in
	// Data. Empty until the frame is allocated.
	BufferedRegion region.Spatial
}

// Allocated reports whether the frame's pixel buffer has been materialized.
func (f *Frame) Allocated() bool {
	return f.Data != nil && !f.BufferedRegion.IsZero()
}

// Offset converts an absolute (D-1)-dimensional coordinate into a flat
// position within Data, relative to the buffered region's origin. The
// innermost (first) axis varies fastest.
func (f *Frame) Offset(idx []int) int {
	off := 0
	stride := 1
	for i := 0; i < f.BufferedRegion.Dim(); i++ {
		off += (idx[i] - f.BufferedRegion.Index[i]) * stride
		stride *= f.BufferedRegion.Size[i]
	}
	return off
}
