package videoconv

import (
	"fmt"

	"slicestream/pkg/dataset"
)

// ExecuteSlices is the data-producing pass: for each frame index in the
// output's requested temporal range it extracts the matching slab from
// the input, collapses the frame axis, and writes the (D-1)-dimensional
// slice into the output frame at the offset given by that frame's
// buffered region.
//
// The output must have been allocated beforehand; this is the only
// component that reads or writes buffer contents and it never allocates
// memory itself. Frames outside the requested range are not modified.
// An attempted frame either becomes fully populated or the call fails
// before that frame is touched; earlier frames keep their data.
func ExecuteSlices(input *dataset.Image, output *dataset.VideoStream, axis int) error {
	inputLargest := input.LargestPossibleRegion()
	if axis < 0 || axis >= inputLargest.Dim() {
		return fmt.Errorf("videoconv: axis %d with input dimension %d: %w",
			axis, inputLargest.Dim(), ErrInvalidAxis)
	}

	requested := output.RequestedTemporalRegion()
	for idx := requested.Start; idx < requested.End(); idx++ {
		if idx < inputLargest.Index[axis] || idx >= inputLargest.Index[axis]+inputLargest.Size[axis] {
			return fmt.Errorf("videoconv: frame %d along axis %d of extent [%d,%d): %w",
				idx, axis, inputLargest.Index[axis], inputLargest.Index[axis]+inputLargest.Size[axis],
				ErrFrameOutOfBounds)
		}

		frame := output.Frame(idx)
		if frame == nil || !frame.Allocated() {
			return fmt.Errorf("videoconv: frame %d: %w", idx, ErrUnallocatedOutput)
		}

		// The slab covers the frame's buffered spatial region at this
		// temporal position, so frames buffered away from the spatial
		// origin read only the pixels they will hold.
		slab := frame.BufferedRegion.Insert(axis, idx)
		data, err := input.ReadSlice(slab)
		if err != nil {
			return fmt.Errorf("videoconv: extracting frame %d: %w", idx, err)
		}

		// ReadSlice walks the slab row-major with the collapsed axis
		// pinned to a single position, so the flat run already matches
		// the frame's layout.
		copy(frame.Data, data)
	}
	return nil
}

// StackFrames is the inverse data pass: it writes each frame in the
// video stream's requested temporal range back into the image as a slab
// along the given axis. Used by the video-to-image filter.
func StackFrames(input *dataset.VideoStream, output *dataset.Image, axis int) error {
	outputLargest := output.LargestPossibleRegion()
	if axis < 0 || axis >= outputLargest.Dim() {
		return fmt.Errorf("videoconv: axis %d with output dimension %d: %w",
			axis, outputLargest.Dim(), ErrInvalidAxis)
	}

	requested := input.RequestedTemporalRegion()
	for idx := requested.Start; idx < requested.End(); idx++ {
		if idx < outputLargest.Index[axis] || idx >= outputLargest.Index[axis]+outputLargest.Size[axis] {
			return fmt.Errorf("videoconv: frame %d along axis %d of extent [%d,%d): %w",
				idx, axis, outputLargest.Index[axis], outputLargest.Index[axis]+outputLargest.Size[axis],
				ErrFrameOutOfBounds)
		}

		frame := input.Frame(idx)
		if frame == nil || !frame.Allocated() {
			return fmt.Errorf("videoconv: frame %d: %w", idx, ErrUnallocatedOutput)
		}

		slab := frame.BufferedRegion.Insert(axis, idx)
		if err := output.WriteSlice(slab, frame.Data); err != nil {
			return fmt.Errorf("videoconv: placing frame %d: %w", idx, err)
		}
	}
	return nil
}
