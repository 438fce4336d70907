package rawvol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicestream/pkg/dataset"
	"slicestream/pkg/region"
	"slicestream/pkg/videoconv"
)

func TestWriteReadRoundTrip(t *testing.T) {
	im := dataset.NewImage(3, 4, 5)
	for i := range im.Data() {
		im.Data()[i] = float64(i) * 0.5
	}

	path := filepath.Join(t.TempDir(), "volume.raw")
	require.NoError(t, Write(path, im))

	got, err := Read(path)
	require.NoError(t, err)
	assert.True(t, got.LargestPossibleRegion().Equal(im.LargestPossibleRegion()))
	assert.Equal(t, im.Data(), got.Data())
}

func TestReadRejectsForeignFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.raw")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0644))

	_, err := Read(path)
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.raw"))
	assert.Error(t, err)
}

func TestReadRejectsBadHeaderSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.raw")
	require.NoError(t, os.WriteFile(path, []byte("rawvol 3 x\n"), 0644))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestWriteFrames(t *testing.T) {
	input := dataset.NewImage(2, 2, 3)
	for i := range input.Data() {
		input.Data()[i] = float64(i)
	}
	output := dataset.NewVideoStream(2)

	filter := videoconv.NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(2)
	filter.SetRequestedTemporalRegion(region.Temporal{Start: 1, Duration: 2})
	require.NoError(t, filter.Update())

	dir := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, WriteFrames(dir, output))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "only allocated frames are written")
	assert.Equal(t, "frame_001.raw", entries[0].Name())
	assert.Equal(t, "frame_002.raw", entries[1].Name())

	frame1, err := Read(filepath.Join(dir, "frame_001.raw"))
	require.NoError(t, err)
	assert.Equal(t, output.Frame(1).Data, frame1.Data())
}
