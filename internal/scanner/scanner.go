package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cuivienor/video-estados/internal/model"
)

// ErrDirectoryUnreadable is returned when the source folder cannot be listed
var ErrDirectoryUnreadable = errors.New("directory unreadable")

// videoExtensions is the allow-list of input extensions (lowercase, with dot)
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".m4v":  true,
}

// IsVideo reports whether name has an allowed video extension (case-insensitive)
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan lists the videos directly inside dir, in file name order.
// Subdirectories are not descended into. Symlinks count only when they
// resolve to a regular file.
func Scan(dir string) ([]model.VideoFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, dir, err)
	}

	files := make([]model.VideoFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsVideo(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks; dangling links and links to directories drop out here
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, model.NewVideoFile(path))
	}

	return files, nil
}

// Summarize returns the first max names joined by ", " with a "+N" suffix
// for the rest, e.g. "a.mp4, b.mov +3"
func Summarize(files []model.VideoFile, max int) string {
	if len(files) == 0 {
		return ""
	}
	if max <= 0 {
		return fmt.Sprintf("+%d", len(files))
	}

	n := max
	if n > len(files) {
		n = len(files)
	}

	names := make([]string, 0, n)
	for _, f := range files[:n] {
		names = append(names, f.Name)
	}

	summary := strings.Join(names, ", ")
	if len(files) > n {
		summary += fmt.Sprintf(" +%d", len(files)-n)
	}
	return summary
}
