package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"scribe/internal/media"
	"scribe/internal/services"
)

// confirmBatch shows the resolved files and asks before a multi-file run.
// Single files never prompt. Without a terminal the prompt cannot be
// answered, so batch runs require --yes there.
func confirmBatch(out io.Writer, in io.Reader, files []media.MediaFile, assumeYes bool) error {
	if len(files) <= 1 || assumeYes {
		return nil
	}

	rows := make([][]string, 0, len(files))
	for i, file := range files {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), string(file.Kind), file.Path})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Type", "File"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))

	if !isTerminal(in) {
		return services.Wrap(services.ErrValidation, "cli", "confirm",
			fmt.Sprintf("%d files matched; re-run with --yes to transcribe them all", len(files)), nil)
	}

	fmt.Fprintf(out, "Transcribe %d files? [y/N] ", len(files))
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return services.Wrap(services.ErrCancelled, "cli", "confirm", "confirmation aborted", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return services.Wrap(services.ErrCancelled, "cli", "confirm", "cancelled by user", nil)
	}
}

// isTerminal reports whether in is an interactive terminal. A variable so
// tests can exercise the prompt without one.
var isTerminal = func(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
