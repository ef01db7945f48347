package properties

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// ProbeResult is the subset of ffprobe's JSON output the assertions need
type ProbeResult struct {
	Streams []ProbeStream `json:"streams"`
	Format  struct {
		FormatName string            `json:"format_name"`
		Tags       map[string]string `json:"tags"`
	} `json:"format"`
}

// ProbeStream describes one stream of a probed file
type ProbeStream struct {
	CodecType  string            `json:"codec_type"`
	CodecName  string            `json:"codec_name"`
	Profile    string            `json:"profile"`
	Level      int               `json:"level"`
	PixFmt     string            `json:"pix_fmt"`
	SampleRate string            `json:"sample_rate"`
	Channels   int               `json:"channels"`
	Tags       map[string]string `json:"tags"`
}

// Probe runs ffprobe on path
func Probe(path string) (*ProbeResult, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_streams",
		"-show_format",
		"-of", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &result, nil
}

// AssertStatusProfile verifies the file matches the WhatsApp status profile:
// H.264 baseline, level 3.0, yuv420p video and AAC 44.1kHz stereo audio
func AssertStatusProfile(path string) error {
	result, err := Probe(path)
	if err != nil {
		return err
	}

	var video, audio *ProbeStream
	for i := range result.Streams {
		switch result.Streams[i].CodecType {
		case "video":
			video = &result.Streams[i]
		case "audio":
			audio = &result.Streams[i]
		}
	}

	if video == nil {
		return fmt.Errorf("%s: no video stream", path)
	}
	if video.CodecName != "h264" {
		return fmt.Errorf("%s: video codec %q, want h264", path, video.CodecName)
	}
	// libx264 reports its baseline as "Constrained Baseline"
	if !strings.Contains(video.Profile, "Baseline") {
		return fmt.Errorf("%s: video profile %q, want baseline", path, video.Profile)
	}
	if video.Level != 30 {
		return fmt.Errorf("%s: video level %d, want 30", path, video.Level)
	}
	if video.PixFmt != "yuv420p" {
		return fmt.Errorf("%s: pixel format %q, want yuv420p", path, video.PixFmt)
	}

	if audio == nil {
		return fmt.Errorf("%s: no audio stream", path)
	}
	if audio.CodecName != "aac" {
		return fmt.Errorf("%s: audio codec %q, want aac", path, audio.CodecName)
	}
	if audio.SampleRate != "44100" {
		return fmt.Errorf("%s: sample rate %q, want 44100", path, audio.SampleRate)
	}
	if audio.Channels != 2 {
		return fmt.Errorf("%s: %d audio channels, want 2", path, audio.Channels)
	}

	return nil
}

// AssertMetadataStripped verifies none of keys survived in the container
// or stream tags (case-insensitive)
func AssertMetadataStripped(path string, keys ...string) error {
	result, err := Probe(path)
	if err != nil {
		return err
	}

	check := func(where string, tags map[string]string) error {
		for tag := range tags {
			for _, key := range keys {
				if strings.EqualFold(tag, key) {
					return fmt.Errorf("%s: %s tag %q survived conversion", path, where, tag)
				}
			}
		}
		return nil
	}

	if err := check("format", result.Format.Tags); err != nil {
		return err
	}
	for _, s := range result.Streams {
		if err := check(s.CodecType, s.Tags); err != nil {
			return err
		}
	}
	return nil
}
