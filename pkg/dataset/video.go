package dataset

import (
	"fmt"
	"sort"

	"slicestream/internal/models"
	"slicestream/pkg/region"
)

// VideoStream is a temporal sequence of (D-1)-dimensional frames with
// region metadata per frame. Frames are addressed by integer index; a
// frame's spatial metadata exists only once region propagation has
// touched that frame index.
type VideoStream struct {
	frameDim          int
	largestTemporal   region.Temporal
	requestedTemporal region.Temporal
	frames            map[int]*models.Frame
}

// NewVideoStream creates an empty stream whose frames will have the
// given spatial dimensionality.
func NewVideoStream(frameDim int) *VideoStream {
	return &VideoStream{
		frameDim: frameDim,
		frames:   make(map[int]*models.Frame),
	}
}

// FrameDim returns the spatial dimensionality of the stream's frames.
func (vs *VideoStream) FrameDim() int {
	return vs.frameDim
}

// SetLargestPossibleTemporalRegion records the maximal frame range the
// stream could ever hold. Called during information propagation.
func (vs *VideoStream) SetLargestPossibleTemporalRegion(t region.Temporal) {
	vs.largestTemporal = t
}

// LargestPossibleTemporalRegion returns the maximal frame range.
func (vs *VideoStream) LargestPossibleTemporalRegion() region.Temporal {
	return vs.largestTemporal
}

// SetRequestedTemporalRegion narrows the frame range downstream demand
// asks for. The request is clipped to the largest possible range.
func (vs *VideoStream) SetRequestedTemporalRegion(t region.Temporal) {
	if !vs.largestTemporal.IsZero() {
		lo := max(t.Start, vs.largestTemporal.Start)
		hi := min(t.End(), vs.largestTemporal.End())
		t = region.Temporal{Start: lo, Duration: max(hi-lo, 0)}
	}
	vs.requestedTemporal = t
}

// RequestedTemporalRegion returns the currently requested frame range.
func (vs *VideoStream) RequestedTemporalRegion() region.Temporal {
	return vs.requestedTemporal
}

// touch returns the frame record for idx, creating its metadata on
// first access.
func (vs *VideoStream) touch(idx int) *models.Frame {
	f, ok := vs.frames[idx]
	if !ok {
		f = &models.Frame{
			Index:                 idx,
			LargestPossibleRegion: region.NewSpatial(vs.frameDim),
			RequestedRegion:       region.NewSpatial(vs.frameDim),
			BufferedRegion:        region.NewSpatial(vs.frameDim),
		}
		vs.frames[idx] = f
	}
	return f
}

// SetAllLargestPossibleSpatialRegions assigns the same largest possible
// spatial region to every frame in the largest possible temporal range.
func (vs *VideoStream) SetAllLargestPossibleSpatialRegions(r region.Spatial) {
	for i := vs.largestTemporal.Start; i < vs.largestTemporal.End(); i++ {
		vs.touch(i).LargestPossibleRegion = r.Clone()
	}
}

// SetFrameLargestPossibleSpatialRegion records the maximal spatial
// extent of a single frame.
func (vs *VideoStream) SetFrameLargestPossibleSpatialRegion(idx int, r region.Spatial) {
	vs.touch(idx).LargestPossibleRegion = r.Clone()
}

// FrameLargestPossibleSpatialRegion returns the maximal spatial extent
// of frame idx, or the zero sentinel if the frame was never touched.
func (vs *VideoStream) FrameLargestPossibleSpatialRegion(idx int) region.Spatial {
	if f, ok := vs.frames[idx]; ok {
		return f.LargestPossibleRegion.Clone()
	}
	return region.NewSpatial(vs.frameDim)
}

// SetFrameRequestedSpatialRegion records the spatial subset downstream
// demand asks of frame idx.
func (vs *VideoStream) SetFrameRequestedSpatialRegion(idx int, r region.Spatial) {
	vs.touch(idx).RequestedRegion = r.Clone()
}

// FrameRequestedSpatialRegion returns the requested spatial subset of
// frame idx, or the zero sentinel if none was set.
func (vs *VideoStream) FrameRequestedSpatialRegion(idx int) region.Spatial {
	if f, ok := vs.frames[idx]; ok {
		return f.RequestedRegion.Clone()
	}
	return region.NewSpatial(vs.frameDim)
}

// FrameBufferedSpatialRegion returns the spatial subset of frame idx
// currently materialized in memory.
func (vs *VideoStream) FrameBufferedSpatialRegion(idx int) region.Spatial {
	if f, ok := vs.frames[idx]; ok {
		return f.BufferedRegion.Clone()
	}
	return region.NewSpatial(vs.frameDim)
}

// Frame returns the writable frame record at idx, or nil if the frame
// was never touched by region propagation.
func (vs *VideoStream) Frame(idx int) *models.Frame {
	return vs.frames[idx]
}

// Allocate materializes the pixel buffer of every frame in the
// requested temporal range, sized to that frame's requested spatial
// region. The buffered region becomes the requested region. Frames
// whose requested region is still the zero sentinel are an error:
// requested-region propagation must run first.
func (vs *VideoStream) Allocate() error {
	for i := vs.requestedTemporal.Start; i < vs.requestedTemporal.End(); i++ {
		f := vs.touch(i)
		if f.RequestedRegion.IsZero() {
			return fmt.Errorf("dataset: frame %d has no requested spatial region; propagate requests before allocating", i)
		}
		f.Data = make([]float64, f.RequestedRegion.NumPixels())
		f.BufferedRegion = f.RequestedRegion.Clone()
	}
	return nil
}

// FrameIndices returns the indices of all frames touched so far, in
// ascending order. Mainly useful for reporting and tests.
func (vs *VideoStream) FrameIndices() []int {
	out := make([]int, 0, len(vs.frames))
	for i := range vs.frames {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
