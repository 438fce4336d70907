package videoconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicestream/pkg/dataset"
	"slicestream/pkg/region"
)

// newTestVolume builds a 3x4x5 image where every voxel holds a value
// unique to its coordinate: 10000*z + 100*y + x.
func newTestVolume(t *testing.T) *dataset.Image {
	t.Helper()
	im := dataset.NewImage(3, 4, 5)
	for z := 0; z < 5; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 3; x++ {
				im.Set(float64(10000*z+100*y+x), x, y, z)
			}
		}
	}
	return im
}

func TestImageToVideoFullUpdate(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)
	require.NoError(t, filter.Update())

	assert.Equal(t, region.Temporal{Start: 0, Duration: 5}, output.LargestPossibleTemporalRegion())
	assert.Equal(t, region.Temporal{Start: 0, Duration: 5}, output.RequestedTemporalRegion())

	for z := 0; z < 5; z++ {
		frame := output.Frame(z)
		require.NotNil(t, frame, "frame %d", z)
		require.True(t, frame.Allocated())
		for y := 0; y < 4; y++ {
			for x := 0; x < 3; x++ {
				want := float64(10000*z + 100*y + x)
				assert.Equal(t, want, frame.Data[y*3+x], "frame %d pixel (%d,%d)", z, x, y)
			}
		}
	}
}

func TestImageToVideoNarrowTemporalWindow(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)
	filter.SetRequestedTemporalRegion(region.Temporal{Start: 1, Duration: 2})
	require.NoError(t, filter.Update())

	// Frames 1 and 2 populated with input[:, :, 1] and input[:, :, 2].
	for _, z := range []int{1, 2} {
		frame := output.Frame(z)
		require.NotNil(t, frame, "frame %d", z)
		require.True(t, frame.Allocated(), "frame %d", z)
		for y := 0; y < 4; y++ {
			for x := 0; x < 3; x++ {
				assert.Equal(t, float64(10000*z+100*y+x), frame.Data[y*3+x])
			}
		}
	}

	// Frames outside the window keep their pre-call unallocated state.
	for _, z := range []int{0, 3, 4} {
		frame := output.Frame(z)
		require.NotNil(t, frame, "metadata exists from information propagation")
		assert.False(t, frame.Allocated(), "frame %d must stay untouched", z)
		assert.Nil(t, frame.Data)
	}
}

func TestImageToVideoLeavesOutOfRangeFramesUnchanged(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)

	// First update materializes every frame.
	require.NoError(t, filter.Update())

	// Snapshot frame 0 and 4, then rerun with a narrow window after
	// perturbing the input: untouched frames must match byte for byte.
	snapshot := func(z int) []float64 {
		data := output.Frame(z).Data
		cp := make([]float64, len(data))
		copy(cp, data)
		return cp
	}
	before0, before4 := snapshot(0), snapshot(4)

	input.Set(-1, 0, 0, 0)
	input.Set(-1, 0, 0, 4)
	filter.SetRequestedTemporalRegion(region.Temporal{Start: 1, Duration: 2})
	require.NoError(t, filter.Update())

	assert.Equal(t, before0, output.Frame(0).Data)
	assert.Equal(t, before4, output.Frame(4).Data)
}

func TestImageToVideoInvalidAxisMutatesNothing(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(5)

	err := filter.Update()
	assert.ErrorIs(t, err, ErrInvalidAxis)
	assert.True(t, output.LargestPossibleTemporalRegion().IsZero())
	assert.Empty(t, output.FrameIndices(), "no frame metadata created")
	assert.True(t, input.RequestedRegion().Equal(input.LargestPossibleRegion()))
}

func TestImageToVideoDefaults(t *testing.T) {
	filter := NewImageToVideoFilter()
	assert.Equal(t, DefaultFrameAxis, filter.FrameAxis())

	assert.ErrorIs(t, filter.Update(), ErrNoInput)
	filter.SetInput(dataset.NewImage(2, 2))
	assert.ErrorIs(t, filter.Update(), ErrNoOutput)
}

func TestImageToVideoCustomHooks(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	var inputRequestCalls int
	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)
	filter.SetHooks(Hooks{
		ComputeInputRequest: func(in *dataset.Image, out *dataset.VideoStream, axis int) (region.Spatial, error) {
			inputRequestCalls++
			// Tightened policy: only the slab range actually needed.
			r := in.LargestPossibleRegion()
			want := out.RequestedTemporalRegion()
			r.Index[axis] = want.Start
			r.Size[axis] = want.Duration
			return r, nil
		},
	})
	filter.SetRequestedTemporalRegion(region.Temporal{Start: 1, Duration: 2})
	require.NoError(t, filter.Update())

	assert.Equal(t, 1, inputRequestCalls)
	got := input.RequestedRegion()
	assert.Equal(t, 1, got.Index[2])
	assert.Equal(t, 2, got.Size[2])
}

func TestExecuteSlicesRequiresAllocation(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)

	filter := NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)
	require.NoError(t, filter.UpdateOutputInformation())
	require.NoError(t, filter.GenerateOutputRequestedRegion())
	require.NoError(t, filter.GenerateInputRequestedRegion())

	// Skipping allocation is a programmer error.
	err := ExecuteSlices(input, output, 2)
	assert.ErrorIs(t, err, ErrUnallocatedOutput)
}

func TestExecuteSlicesFrameOutOfBounds(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)
	output.SetLargestPossibleTemporalRegion(region.Temporal{Start: 0, Duration: 9})
	output.SetAllLargestPossibleSpatialRegions(region.MakeSpatial([]int{0, 0}, []int{3, 4}))
	output.SetRequestedTemporalRegion(region.Temporal{Start: 4, Duration: 3})
	FillDefaultSpatialRequests(output)
	require.NoError(t, output.Allocate())

	// Frames 5.. exceed the input's extent (5) along axis 2.
	err := ExecuteSlices(input, output, 2)
	assert.ErrorIs(t, err, ErrFrameOutOfBounds)

	// Frame 4 was attempted first and fully populated before the failure.
	frame := output.Frame(4)
	require.NotNil(t, frame)
	assert.Equal(t, float64(10000*4), frame.Data[0])
}

func TestExecuteOffsetBufferedRegion(t *testing.T) {
	input := newTestVolume(t)
	output := dataset.NewVideoStream(2)
	output.SetLargestPossibleTemporalRegion(region.Temporal{Start: 0, Duration: 5})
	output.SetAllLargestPossibleSpatialRegions(region.MakeSpatial([]int{0, 0}, []int{3, 4}))
	output.SetRequestedTemporalRegion(region.Temporal{Start: 2, Duration: 1})

	// Frame 2 buffers only an interior window away from the origin.
	window := region.MakeSpatial([]int{1, 2}, []int{2, 2})
	output.SetFrameRequestedSpatialRegion(2, window)
	require.NoError(t, output.Allocate())
	require.NoError(t, ExecuteSlices(input, output, 2))

	frame := output.Frame(2)
	require.NotNil(t, frame)
	require.Len(t, frame.Data, 4)
	// Row-major over the window: (1,2) (2,2) (1,3) (2,3) at z=2.
	assert.Equal(t, []float64{20201, 20202, 20301, 20302}, frame.Data)
}

func TestRoundTripThroughVideo(t *testing.T) {
	for axis := 0; axis < 3; axis++ {
		input := newTestVolume(t)
		stream := dataset.NewVideoStream(2)

		forward := NewImageToVideoFilter()
		forward.SetInput(input)
		forward.SetOutput(stream)
		forward.SetFrameAxis(axis)
		require.NoError(t, forward.Update(), "axis %d", axis)

		inverse := NewVideoToImageFilter()
		inverse.SetInput(stream)
		inverse.SetFrameAxis(axis)

		outRegion, err := inverse.OutputLargestRegion()
		require.NoError(t, err)
		assert.True(t, outRegion.Equal(input.LargestPossibleRegion()), "axis %d", axis)

		restored := dataset.NewImageWithRegion(outRegion)
		inverse.SetOutput(restored)
		require.NoError(t, inverse.Update(), "axis %d", axis)

		assert.Equal(t, input.Data(), restored.Data(),
			"slicing along axis %d and restacking must reproduce the volume exactly", axis)
	}
}
