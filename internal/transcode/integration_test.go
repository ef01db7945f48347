package transcode_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/cuivienor/video-estados/internal/logging"
	"github.com/cuivienor/video-estados/internal/model"
	"github.com/cuivienor/video-estados/internal/pipeline/properties"
	"github.com/cuivienor/video-estados/internal/testutil"
	"github.com/cuivienor/video-estados/internal/transcode"
)

func TestRunner_Integration(t *testing.T) {
	// Skip if ffmpeg not available
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "holiday.mov")
	if err := testutil.GenerateTestVideo(input, testutil.VideoOptions{DurationSec: 2}); err != nil {
		t.Fatalf("Failed to create test video: %v", err)
	}

	// The fixture must actually carry the tags we expect to see removed
	if err := properties.AssertMetadataStripped(input, "location", "make", "comment"); err == nil {
		t.Fatal("fixture has no metadata to strip")
	}

	destDir := transcode.DestinationDir(tmpDir)
	os.MkdirAll(destDir, 0755)

	runner := transcode.NewRunner("", logging.Discard())
	outcome := runner.Convert(context.Background(), model.NewVideoFile(input), destDir)
	if !outcome.IsSuccess() {
		t.Fatalf("Convert failed: %v %s", outcome.Status, outcome.Diagnostic)
	}

	if outcome.OutputPath != filepath.Join(tmpDir, "convertidos", "holiday_whatsapp.mp4") {
		t.Errorf("OutputPath = %q", outcome.OutputPath)
	}
	if err := properties.AssertStatusProfile(outcome.OutputPath); err != nil {
		t.Error(err)
	}
	if err := properties.AssertMetadataStripped(outcome.OutputPath, "location", "make", "comment"); err != nil {
		t.Error(err)
	}
}
