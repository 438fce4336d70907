// Package rawvol reads and writes volumes in a minimal raw raster
// format: a single text header line declaring the per-axis sizes,
// followed by the pixel data as little-endian float64 values in
// row-major order, innermost axis fastest.
//
// The format exists so the command-line tool can move volumes and
// produced frames in and out of the pipeline; the core packages never
// touch files.
package rawvol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"slicestream/pkg/dataset"
)

// magic identifies a raw volume file.
const magic = "rawvol"

// Write stores an image's full buffer to the given path.
func Write(path string, im *dataset.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create volume file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	sizes := im.LargestPossibleRegion().Size
	fields := make([]string, 0, len(sizes)+1)
	fields = append(fields, magic)
	for _, s := range sizes {
		fields = append(fields, strconv.Itoa(s))
	}
	if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
		return fmt.Errorf("failed to write volume header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, im.Data()); err != nil {
		return fmt.Errorf("failed to write volume data: %w", err)
	}
	return w.Flush()
}

// Read loads a raw volume file into a freshly allocated image with its
// largest possible region at the origin.
func Read(path string) (*dataset.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read volume header: %w", err)
	}

	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != magic {
		return nil, fmt.Errorf("not a raw volume file: %q", strings.TrimSpace(header))
	}

	sizes := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid axis size %q in volume header", f)
		}
		sizes[i] = n
	}

	im := dataset.NewImage(sizes...)
	if err := binary.Read(r, binary.LittleEndian, im.Data()); err != nil {
		return nil, fmt.Errorf("failed to read volume data: %w", err)
	}
	return im, nil
}

// WriteFrames stores every allocated frame of a video stream into dir,
// one raw file per frame named by its temporal index. Unallocated
// frames are skipped.
func WriteFrames(dir string, vs *dataset.VideoStream) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create frame directory: %w", err)
	}

	for _, idx := range vs.FrameIndices() {
		frame := vs.Frame(idx)
		if frame == nil || !frame.Allocated() {
			continue
		}

		im := dataset.NewImageWithRegion(frame.BufferedRegion)
		copy(im.Data(), frame.Data)
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.raw", idx))
		if err := Write(path, im); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", idx, err)
		}
	}
	return nil
}
