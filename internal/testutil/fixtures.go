package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// VideoOptions configures synthetic video generation
type VideoOptions struct {
	DurationSec int               // Video duration in seconds (default: 1)
	Metadata    map[string]string // Container tags to embed (default: a GPS location, a device and a comment)
}

// GenerateTestVideo creates a short synthetic video with embedded metadata
// using the real ffmpeg. The container follows outputPath's extension.
func GenerateTestVideo(outputPath string, opts VideoOptions) error {
	if opts.DurationSec == 0 {
		opts.DurationSec = 1
	}
	if opts.Metadata == nil {
		opts.Metadata = map[string]string{
			"location": "+40.4168-003.7038/",
			"make":     "TestPhone",
			"comment":  "private",
		}
	}

	if outputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-f", "lavfi", "-i", fmt.Sprintf("testsrc=duration=%d:size=320x240:rate=24", opts.DurationSec),
		"-f", "lavfi", "-i", fmt.Sprintf("anullsrc=r=48000:cl=mono:d=%d", opts.DurationSec),
		"-c:v", "libx264", "-preset", "ultrafast", "-profile:v", "high", "-pix_fmt", "yuv444p",
		"-c:a", "aac",
	}

	for k, v := range opts.Metadata {
		args = append(args, "-metadata", fmt.Sprintf("%s=%s", k, v))
	}

	args = append(args, "-shortest", "-y", outputPath)

	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, output)
	}

	return nil
}
