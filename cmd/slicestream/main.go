package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"slicestream/pkg/config"
	"slicestream/pkg/dataset"
	"slicestream/pkg/rawvol"
	"slicestream/pkg/region"
	"slicestream/pkg/stats"
	"slicestream/pkg/videoconv"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Raw volume file to convert (synthetic volume if empty)")
	configPath := flag.String("config", "slicestream.yaml", "Configuration file")
	framesDir := flag.String("frames-dir", "", "Directory to save produced frames (skipped if empty)")
	frameAxis := flag.Int("axis", -1, "Input axis mapped to the temporal axis (overrides config)")
	frameStart := flag.Int("start", -1, "First frame to produce (overrides config)")
	frameDuration := flag.Int("duration", -1, "Number of frames to produce, 0 for all (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *frameAxis >= 0 {
		cfg.Processing.FrameAxis = *frameAxis
	}
	if *frameStart >= 0 {
		cfg.Processing.FrameStart = *frameStart
	}
	if *frameDuration >= 0 {
		cfg.Processing.FrameDuration = *frameDuration
	}

	level := slog.LevelInfo
	if !cfg.Output.Verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	input, err := loadVolume(*inputPath, logger)
	if err != nil {
		logger.Error("failed to load volume", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	largest := input.LargestPossibleRegion()
	logger.Info("volume loaded",
		"size", fmt.Sprint(largest.Size),
		"bytes", humanize.Bytes(uint64(largest.NumPixels()*8)))

	output := dataset.NewVideoStream(input.Dim() - 1)
	filter := videoconv.NewImageToVideoFilter()
	filter.SetInput(input)
	filter.SetOutput(output)
	filter.SetFrameAxis(cfg.Processing.FrameAxis)
	if cfg.Processing.FrameDuration > 0 {
		filter.SetRequestedTemporalRegion(region.Temporal{
			Start:    cfg.Processing.FrameStart,
			Duration: cfg.Processing.FrameDuration,
		})
	}

	if err := filter.Update(); err != nil {
		logger.Error("conversion failed", "axis", cfg.Processing.FrameAxis, "error", err)
		os.Exit(1)
	}

	produced := output.RequestedTemporalRegion()
	logger.Info("conversion complete",
		"axis", cfg.Processing.FrameAxis,
		"frames", produced.Duration,
		"first", produced.Start)

	if cfg.Output.FrameStats {
		for i := produced.Start; i < produced.End(); i++ {
			frame := output.Frame(i)
			if frame == nil || !frame.Allocated() {
				continue
			}
			s := stats.Summarize(frame.Data)
			logger.Info("frame",
				"index", i,
				"pixels", s.Pixels,
				"mean", fmt.Sprintf("%.4f", s.Mean),
				"stddev", fmt.Sprintf("%.4f", s.StdDev),
				"min", s.Min,
				"max", s.Max)
		}
	}

	if *framesDir != "" {
		if err := rawvol.WriteFrames(*framesDir, output); err != nil {
			logger.Error("failed to save frames", "dir", *framesDir, "error", err)
			os.Exit(1)
		}
		logger.Info("frames saved", "dir", *framesDir)
	}
}

// loadVolume reads the input file, or builds a small synthetic gradient
// volume so the tool can be exercised without one.
func loadVolume(path string, logger *slog.Logger) (*dataset.Image, error) {
	if path != "" {
		return rawvol.Read(path)
	}

	logger.Info("no input given, generating synthetic volume", "size", "64x64x16")
	im := dataset.NewImage(64, 64, 16)
	for z := 0; z < 16; z++ {
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				im.Set(float64(x+y)/126+float64(z), x, y, z)
			}
		}
	}
	return im, nil
}
