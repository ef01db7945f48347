package transcode

import (
	"path/filepath"

	"github.com/cuivienor/video-estados/internal/model"
)

// Destination layout
const (
	DestinationDirName = "convertidos"
	OutputSuffix       = "_whatsapp"
	OutputExt          = ".mp4"
)

// WhatsApp status profile. These are policy, not settings.
const (
	VideoCodec      = "libx264"
	VideoProfile    = "baseline"
	VideoLevel      = "3.0"
	PixelFormat     = "yuv420p"
	EncoderPreset   = "fast"
	AudioCodec      = "aac"
	AudioBitrate    = "128k"
	AudioSampleRate = "44100"
	AudioChannels   = "2"
)

// DestinationDir returns the output folder for a source folder
func DestinationDir(sourceDir string) string {
	return filepath.Join(sourceDir, DestinationDirName)
}

// OutputPath returns where the converted file for v goes.
// Inputs whose names differ only by extension map to the same path.
func OutputPath(v model.VideoFile, destDir string) string {
	return filepath.Join(destDir, v.Stem()+OutputSuffix+OutputExt)
}

// BuildArgs builds the engine argument list for one conversion.
// Metadata is always stripped and an existing output is always overwritten.
func BuildArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath,
		"-y",
		"-map_metadata", "-1",
		"-c:v", VideoCodec,
		"-profile:v", VideoProfile,
		"-level:v", VideoLevel,
		"-pix_fmt", PixelFormat,
		"-preset", EncoderPreset,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-movflags", "+faststart",
		outputPath,
	}
}
