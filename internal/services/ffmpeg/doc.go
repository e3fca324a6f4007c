// Package ffmpeg wraps the ffmpeg and ffprobe binaries for the codec work
// both tools need: MP3 conversion, audio extraction for video transcription,
// stereo channel splitting, and stream inspection. Command runners are
// injectable so callers can test without the real binaries.
package ffmpeg
