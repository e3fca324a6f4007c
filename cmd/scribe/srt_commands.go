package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/fileutil"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

func newSRTToTextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "srt2txt <file-or-directory>",
		Short: "Convert SRT subtitles to plain-text transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertSubtitles(cmd, args[0], "txt", func(segments []subtitles.Segment, dest string) error {
				return subtitles.WriteTextFile(dest, segments)
			})
		},
	}
}

func newSRTToLRCCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "srt2lrc <file-or-directory>",
		Short: "Convert SRT subtitles to LRC lyric files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertSubtitles(cmd, args[0], "lrc", func(segments []subtitles.Segment, dest string) error {
				return subtitles.WriteLRCFile(dest, segments, fileutil.Stem(dest))
			})
		},
	}
}

// convertSubtitles converts one SRT file in place, or every SRT file in a
// directory into a <format>/ subdirectory beside the sources.
func convertSubtitles(cmd *cobra.Command, path, format string, write func([]subtitles.Segment, string) error) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrNotFound, "subtitles", "stat", path, nil)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	out := cmd.OutOrStdout()

	if !info.IsDir() {
		if !fileutil.HasExt(path, ".srt") {
			return services.Wrap(services.ErrUnsupportedFormat, "subtitles", "classify",
				fmt.Sprintf("%s is not an .srt file", path), nil)
		}
		dest := fileutil.ReplaceExt(path, "."+format)
		if err := convertOne(path, dest, write); err != nil {
			return err
		}
		fmt.Fprintln(out, dest)
		return nil
	}

	sources, err := collectSRT(path)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(out, "No .srt files found.")
		return nil
	}

	destDir := filepath.Join(path, format)
	if err := fileutil.EnsureDir(destDir); err != nil {
		return err
	}

	failed := 0
	for _, source := range sources {
		dest := filepath.Join(destDir, fileutil.Stem(source)+"."+format)
		if err := convertOne(source, dest, write); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", source, err)
			continue
		}
		fmt.Fprintln(out, dest)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(sources))
	}
	return nil
}

func convertOne(source, dest string, write func([]subtitles.Segment, string) error) error {
	segments, err := subtitles.ParseSRTFile(source)
	if err != nil {
		return err
	}
	return write(segments, dest)
}

// collectSRT lists .srt files directly inside dir, sorted.
func collectSRT(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var sources []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".srt") {
			sources = append(sources, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(sources)
	return sources, nil
}
