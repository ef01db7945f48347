package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv provides an isolated source folder, destination folder and a
// bin directory for fake tools
type TestEnv struct {
	t         *testing.T
	BaseDir   string
	SourceDir string
	DestDir   string
	BinDir    string
}

// NewTestEnv creates a new isolated test environment.
// DestDir is not created; the batch coordinator does that.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	baseDir := t.TempDir()
	env := &TestEnv{
		t:         t,
		BaseDir:   baseDir,
		SourceDir: filepath.Join(baseDir, "videos"),
		DestDir:   filepath.Join(baseDir, "videos", "convertidos"),
		BinDir:    filepath.Join(baseDir, "bin"),
	}

	for _, dir := range []string{env.SourceDir, env.BinDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	return env
}

// AddFiles creates placeholder files in the source folder and returns their paths
func (e *TestEnv) AddFiles(names ...string) []string {
	e.t.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(e.SourceDir, name)
		if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
			e.t.Fatalf("failed to create %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// WriteTool writes an executable shell script into BinDir and returns its path
func (e *TestEnv) WriteTool(name, body string) string {
	e.t.Helper()

	path, err := WriteScript(e.BinDir, name, body)
	if err != nil {
		e.t.Fatalf("failed to write tool %s: %v", name, err)
	}
	return path
}

// WriteEngine writes the standard fake engine (see FakeEngineScript)
func (e *TestEnv) WriteEngine() string {
	return e.WriteTool("ffmpeg", FakeEngineScript)
}
