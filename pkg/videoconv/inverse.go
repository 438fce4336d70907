package videoconv

import (
	"fmt"

	"slicestream/pkg/dataset"
	"slicestream/pkg/region"
)

// VideoToImageFilter is the dual of ImageToVideoFilter: it stacks the
// frames of a video stream back into an N-dimensional image along the
// configured frame axis. Frame index i lands at index i along that
// axis, so converting an image to video and back reproduces the
// original.
type VideoToImageFilter struct {
	input     *dataset.VideoStream
	output    *dataset.Image
	frameAxis int
}

// NewVideoToImageFilter creates a stacking filter with the default
// frame axis.
func NewVideoToImageFilter() *VideoToImageFilter {
	return &VideoToImageFilter{frameAxis: DefaultFrameAxis}
}

// SetInput connects the temporal input. Passing nil disconnects.
func (f *VideoToImageFilter) SetInput(input *dataset.VideoStream) {
	f.input = input
}

// SetOutput connects the spatial output. Passing nil disconnects.
func (f *VideoToImageFilter) SetOutput(output *dataset.Image) {
	f.output = output
}

// SetFrameAxis selects the output axis along which frames are stacked.
func (f *VideoToImageFilter) SetFrameAxis(axis int) {
	f.frameAxis = axis
}

// FrameAxis returns the configured frame axis.
func (f *VideoToImageFilter) FrameAxis() int {
	return f.frameAxis
}

// OutputLargestRegion computes the spatial extent an output image must
// have to hold the stream's largest possible range: the per-frame
// spatial extent with the temporal extent inserted at the frame axis.
// This is the inverse filter's information-propagation step.
func (f *VideoToImageFilter) OutputLargestRegion() (region.Spatial, error) {
	if f.input == nil {
		return region.Spatial{}, fmt.Errorf("videoconv: VideoToImageFilter: %w", ErrNoInput)
	}

	temporal := f.input.LargestPossibleTemporalRegion()
	spatial := f.input.FrameLargestPossibleSpatialRegion(temporal.Start)
	if axis := f.frameAxis; axis < 0 || axis > spatial.Dim() {
		return region.Spatial{}, fmt.Errorf("videoconv: axis %d with frame dimension %d: %w",
			axis, spatial.Dim(), ErrInvalidAxis)
	}

	out := spatial.Insert(f.frameAxis, temporal.Start)
	out.Size[f.frameAxis] = temporal.Duration
	return out, nil
}

// Update stacks every frame in the input's requested temporal region
// into the output image. The output must already cover the stacked
// extent along the frame axis.
func (f *VideoToImageFilter) Update() error {
	if f.input == nil {
		return fmt.Errorf("videoconv: VideoToImageFilter: %w", ErrNoInput)
	}
	if f.output == nil {
		return fmt.Errorf("videoconv: VideoToImageFilter: %w", ErrNoOutput)
	}
	return StackFrames(f.input, f.output, f.frameAxis)
}
