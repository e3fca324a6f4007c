// Package subtitles renders timed transcription segments into the artifact
// formats the driver writes: SubRip subtitles, plain-text transcripts, and
// LRC lyric files. It also parses existing SRT files back into segments so
// the conversion subcommands can reuse the same renderers.
package subtitles
