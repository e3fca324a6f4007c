// Command scribe batch-transcribes audio and video files into subtitle and
// transcript artifacts using an external Whisper-family CLI, and carries the
// companion subcommands for working with the results (format conversion of
// existing subtitles, channel splitting, summaries, run history).
package main
