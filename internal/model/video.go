package model

import (
	"path/filepath"
	"strings"
)

// VideoFile is a discovered input video. It is never mutated after discovery.
type VideoFile struct {
	Path string // Absolute path
	Name string // Base name, e.g. "clip.MOV"
	Ext  string // Extension as found on disk, with the leading dot
}

// NewVideoFile builds a VideoFile from a path, making it absolute when possible
func NewVideoFile(path string) VideoFile {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	name := filepath.Base(path)
	return VideoFile{
		Path: path,
		Name: name,
		Ext:  filepath.Ext(name),
	}
}

// Stem returns the base name without its extension
func (v VideoFile) Stem() string {
	return strings.TrimSuffix(v.Name, v.Ext)
}
