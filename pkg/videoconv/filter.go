// Package videoconv converts between an N-dimensional spatial image and
// a video stream of (N-1)-dimensional frames by mapping one spatial axis
// of the image to the temporal axis of the stream.
//
// The conversion follows the demand-driven update cycle of a streamed
// pipeline: information propagation first establishes how much the
// output could ever hold, requested-region propagation then narrows
// what will actually be read, and only afterwards does the
// data-producing pass touch pixel data. The pass may run repeatedly
// with different requested windows, one frame range at a time.
package videoconv

import (
	"fmt"

	"slicestream/pkg/dataset"
	"slicestream/pkg/region"
)

// DefaultFrameAxis is the input axis treated as the temporal axis when
// none is configured. Axis 0 is the innermost (fastest-varying) axis.
const DefaultFrameAxis = 0

// Hooks are the propagation customization points of a filter. Stages
// that need different behavior replace individual functions instead of
// subclassing; each field defaults to the package-level implementation.
type Hooks struct {
	// ComputeOutputLargest maps the input's largest possible region to
	// the output's temporal and per-frame spatial extents.
	ComputeOutputLargest func(inputLargest region.Spatial, axis int) (region.Temporal, region.Spatial, error)

	// FillDefaultRequests assigns default spatial requests to frames
	// that have none.
	FillDefaultRequests func(output *dataset.VideoStream)

	// ComputeInputRequest derives the input region needed to satisfy
	// the output's current demand.
	ComputeInputRequest func(input *dataset.Image, output *dataset.VideoStream, axis int) (region.Spatial, error)
}

// defaultHooks returns the standard propagation behavior.
func defaultHooks() Hooks {
	return Hooks{
		ComputeOutputLargest: ComputeOutputLargestRegion,
		FillDefaultRequests:  FillDefaultSpatialRequests,
		ComputeInputRequest:  ComputeInputRequest,
	}
}

// ImageToVideoFilter converts an N-dimensional image into a stream of
// (N-1)-dimensional frames taken perpendicular to the configured frame
// axis. The filter holds non-owning references to its connected input
// and output; both are created and owned by the caller.
type ImageToVideoFilter struct {
	input     *dataset.Image
	output    *dataset.VideoStream
	frameAxis int
	hooks     Hooks

	// requestedTemporal, when set, narrows which frames the next update
	// produces. Zero duration means "all frames".
	requestedTemporal region.Temporal
}

// NewImageToVideoFilter creates a filter with the default frame axis
// and default propagation hooks. Input and output are connected
// separately.
func NewImageToVideoFilter() *ImageToVideoFilter {
	return &ImageToVideoFilter{
		frameAxis: DefaultFrameAxis,
		hooks:     defaultHooks(),
	}
}

// SetInput connects the spatial input. Passing nil disconnects.
func (f *ImageToVideoFilter) SetInput(input *dataset.Image) {
	f.input = input
}

// Input returns the currently connected input, or nil.
func (f *ImageToVideoFilter) Input() *dataset.Image {
	return f.input
}

// SetOutput connects the temporal output. Passing nil disconnects.
func (f *ImageToVideoFilter) SetOutput(output *dataset.VideoStream) {
	f.output = output
}

// Output returns the currently connected output, or nil.
func (f *ImageToVideoFilter) Output() *dataset.VideoStream {
	return f.output
}

// SetFrameAxis selects which input axis becomes the temporal axis of
// the output. The axis is validated against the input's dimensionality
// when the filter updates, not here, since the input may not be
// connected yet.
func (f *ImageToVideoFilter) SetFrameAxis(axis int) {
	f.frameAxis = axis
}

// FrameAxis returns the configured frame axis.
func (f *ImageToVideoFilter) FrameAxis() int {
	return f.frameAxis
}

// SetHooks replaces the propagation hooks. Nil fields fall back to the
// defaults.
func (f *ImageToVideoFilter) SetHooks(h Hooks) {
	d := defaultHooks()
	if h.ComputeOutputLargest == nil {
		h.ComputeOutputLargest = d.ComputeOutputLargest
	}
	if h.FillDefaultRequests == nil {
		h.FillDefaultRequests = d.FillDefaultRequests
	}
	if h.ComputeInputRequest == nil {
		h.ComputeInputRequest = d.ComputeInputRequest
	}
	f.hooks = h
}

// SetRequestedTemporalRegion narrows which frames the next Update
// produces. A zero-duration region restores the default of producing
// every frame.
func (f *ImageToVideoFilter) SetRequestedTemporalRegion(t region.Temporal) {
	f.requestedTemporal = t
}

// RequestedTemporalRegion returns the configured frame window.
func (f *ImageToVideoFilter) RequestedTemporalRegion() region.Temporal {
	return f.requestedTemporal
}

// UpdateOutputInformation runs information propagation: the output's
// largest possible temporal region is taken from the input's extent
// along the frame axis, and every frame in that range receives the
// collapsed spatial extent of the remaining axes. No pixel data is
// touched.
func (f *ImageToVideoFilter) UpdateOutputInformation() error {
	if f.input == nil {
		return fmt.Errorf("videoconv: ImageToVideoFilter: %w", ErrNoInput)
	}
	if f.output == nil {
		return fmt.Errorf("videoconv: ImageToVideoFilter: %w", ErrNoOutput)
	}

	temporal, spatial, err := f.hooks.ComputeOutputLargest(f.input.LargestPossibleRegion(), f.frameAxis)
	if err != nil {
		return err
	}
	f.output.SetLargestPossibleTemporalRegion(temporal)
	f.output.SetAllLargestPossibleSpatialRegions(spatial)
	return nil
}

// GenerateOutputRequestedRegion runs the output half of requested-region
// propagation. The requested temporal region defaults to the largest
// possible range unless the caller configured a narrower window, and
// frames without a specific spatial request receive their largest
// possible region.
func (f *ImageToVideoFilter) GenerateOutputRequestedRegion() error {
	if f.output == nil {
		return fmt.Errorf("videoconv: ImageToVideoFilter: %w", ErrNoOutput)
	}

	want := f.requestedTemporal
	if want.IsZero() {
		want = f.output.LargestPossibleTemporalRegion()
	}
	f.output.SetRequestedTemporalRegion(want)
	f.hooks.FillDefaultRequests(f.output)
	return nil
}

// GenerateInputRequestedRegion runs the input half of requested-region
// propagation, narrowing (or, under the default conservative policy,
// keeping whole) the input's requested region. Idempotent: repeating it
// with the same output demand produces the same input request.
func (f *ImageToVideoFilter) GenerateInputRequestedRegion() error {
	if f.input == nil {
		return fmt.Errorf("videoconv: ImageToVideoFilter: %w", ErrNoInput)
	}
	if f.output == nil {
		return fmt.Errorf("videoconv: ImageToVideoFilter: %w", ErrNoOutput)
	}

	request, err := f.hooks.ComputeInputRequest(f.input, f.output, f.frameAxis)
	if err != nil {
		return err
	}
	return f.input.SetRequestedRegion(request)
}

// GenerateData allocates the requested output frames and runs the slice
// executor over the requested temporal range.
func (f *ImageToVideoFilter) GenerateData() error {
	if err := f.output.Allocate(); err != nil {
		return fmt.Errorf("videoconv: allocating output: %w", err)
	}
	return ExecuteSlices(f.input, f.output, f.frameAxis)
}

// Update runs one full pipeline update cycle in the required order:
// information propagation, requested-region propagation, then the
// data-producing pass. Any negotiation error aborts before pixel data
// is touched.
func (f *ImageToVideoFilter) Update() error {
	if err := f.UpdateOutputInformation(); err != nil {
		return err
	}
	if err := f.GenerateOutputRequestedRegion(); err != nil {
		return err
	}
	if err := f.GenerateInputRequestedRegion(); err != nil {
		return err
	}
	return f.GenerateData()
}
