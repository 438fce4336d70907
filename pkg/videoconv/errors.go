package videoconv

import (
	"errors"
)

// Standard error variables for region negotiation and slice execution.
// All of these mark structural or programming errors; none are
// transient, and no operation retries after reporting one.
var (
	// ErrInvalidAxis reports a frame axis outside [0, D) for a
	// D-dimensional input. Fatal; the pipeline update aborts before any
	// region or buffer is mutated.
	ErrInvalidAxis = errors.New("frame axis outside input dimensionality")

	// ErrFrameOutOfBounds reports a requested frame index beyond the
	// input's extent along the frame axis. Fatal for the update cycle.
	ErrFrameOutOfBounds = errors.New("frame index outside input extent along frame axis")

	// ErrUnallocatedOutput reports data production invoked before the
	// output's frame buffers were allocated. Programmer error.
	ErrUnallocatedOutput = errors.New("output frame buffer not allocated")

	// ErrNoInput reports an update on a filter with no connected input.
	ErrNoInput = errors.New("no input connected")

	// ErrNoOutput reports an update on a filter with no connected output.
	ErrNoOutput = errors.New("no output connected")
)
