package videoconv

import (
	"fmt"

	"slicestream/pkg/dataset"
	"slicestream/pkg/region"
)

// ComputeOutputLargestRegion splits a D-dimensional input region into
// the 1-D temporal component taken from the frame axis and the (D-1)-
// dimensional spatial component covering the remaining axes in their
// original order, index offsets preserved.
//
// This is the information-propagation step: its result must be stored
// on the output stream before any requested-region computation is
// meaningful.
func ComputeOutputLargestRegion(inputLargest region.Spatial, axis int) (region.Temporal, region.Spatial, error) {
	if axis < 0 || axis >= inputLargest.Dim() {
		return region.Temporal{}, region.Spatial{}, fmt.Errorf(
			"videoconv: axis %d with input dimension %d: %w", axis, inputLargest.Dim(), ErrInvalidAxis)
	}

	temporal := region.Temporal{
		Start:    inputLargest.Index[axis],
		Duration: inputLargest.Size[axis],
	}
	spatial := inputLargest.Collapse(axis)
	return temporal, spatial, nil
}

// FillDefaultSpatialRequests walks the output's requested temporal
// range and, for every frame whose requested spatial region is still
// the zero-size sentinel, sets it to that frame's largest possible
// spatial region. Consumers that ask for nothing specific receive
// everything available; this widening is the documented default, not an
// error path. Frames outside the requested range are left untouched,
// and a non-zero requested region is never shrunk.
func FillDefaultSpatialRequests(output *dataset.VideoStream) {
	requested := output.RequestedTemporalRegion()
	for i := requested.Start; i < requested.End(); i++ {
		if output.FrameRequestedSpatialRegion(i).IsZero() {
			output.SetFrameRequestedSpatialRegion(i, output.FrameLargestPossibleSpatialRegion(i))
		}
	}
}

// ComputeInputRequest derives the input region that must be requested
// to satisfy the output's current demand. The policy is conservative:
// the whole input largest possible region is requested regardless of
// how narrow the output's requested temporal or spatial sub-region is.
// TODO: tighten to the bounding region of the requested output frames.
func ComputeInputRequest(input *dataset.Image, _ *dataset.VideoStream, axis int) (region.Spatial, error) {
	if axis < 0 || axis >= input.Dim() {
		return region.Spatial{}, fmt.Errorf(
			"videoconv: axis %d with input dimension %d: %w", axis, input.Dim(), ErrInvalidAxis)
	}
	return input.LargestPossibleRegion(), nil
}
