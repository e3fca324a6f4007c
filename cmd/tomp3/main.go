// The tomp3 command converts a single audio file to MP3 next to the input.
// It takes exactly one argument and no flags:
//
//	tomp3 recording.m4a
//
// Supported inputs are m4a, wav, mp3, aac, flac, ogg, and wma. Decoding
// relies on ffmpeg's container auto-detection with one retry using the
// extension's format hint, so misnamed files usually still convert.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"scribe/internal/config"
	"scribe/internal/services/ffmpeg"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <audio-file>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, _, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	codec := ffmpeg.NewService(ffmpeg.Config{
		Binary:      cfg.FFmpeg.Binary,
		ProbeBinary: cfg.FFmpeg.ProbeBinary,
		MP3Bitrate:  cfg.FFmpeg.MP3Bitrate,
	})

	start := time.Now()
	dest, err := codec.ConvertToMP3(ctx, os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%s (%.1fs)\n", dest, time.Since(start).Seconds())
}
