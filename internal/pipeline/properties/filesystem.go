package properties

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuivienor/video-estados/internal/model"
	"github.com/cuivienor/video-estados/internal/transcode"
)

// AssertOutputsFor verifies that every input has its deterministic,
// non-empty output file in destDir
func AssertOutputsFor(files []model.VideoFile, destDir string) error {
	for _, f := range files {
		out := transcode.OutputPath(f, destDir)
		info, err := os.Stat(out)
		if err != nil {
			return fmt.Errorf("output for %s: %w", f.Name, err)
		}
		if info.Size() == 0 {
			return fmt.Errorf("output for %s is empty: %s", f.Name, out)
		}
	}
	return nil
}

// AssertNoStrayOutputs verifies destDir holds nothing but the outputs of files
func AssertNoStrayOutputs(files []model.VideoFile, destDir string) error {
	expected := make(map[string]bool, len(files))
	for _, f := range files {
		expected[filepath.Base(transcode.OutputPath(f, destDir))] = true
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("failed to read output dir: %w", err)
	}

	for _, entry := range entries {
		if !expected[entry.Name()] {
			return fmt.Errorf("unexpected file in %s: %s", destDir, entry.Name())
		}
	}
	return nil
}
