package transcribe

import (
	"time"

	"scribe/internal/media"
)

// BatchJob is everything one driver invocation needs. Created once per run,
// never persisted.
type BatchJob struct {
	// InputPath is the operator-supplied path, kept for the run record.
	InputPath string
	// Files is the resolved, ordered list of media to process.
	Files []media.MediaFile
	// Model is the recognizer model identifier (e.g. "base", "large-v3").
	Model string
	// Language is the language hint; empty means auto-detect.
	Language string
	// OutputDir overrides the per-file default of writing artifacts next to
	// the input when set.
	OutputDir string
	// WriteText also emits a plain-text transcript per file.
	WriteText bool
	// WriteLRC also emits an LRC lyric file per file.
	WriteLRC bool
}

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	File      media.MediaFile
	Artifacts []string
	Err       error
	Elapsed   time.Duration
}

// RunSummary aggregates per-file outcomes for the final report and the exit
// status. Appended to by the single orchestrating goroutine only.
type RunSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []FileOutcome
}

// Succeeded counts files that produced their artifacts.
func (s *RunSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts files that did not.
func (s *RunSummary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// Failures returns the outcomes that carry an error, in batch order.
func (s *RunSummary) Failures() []FileOutcome {
	var failures []FileOutcome
	for _, o := range s.Outcomes {
		if o.Err != nil {
			failures = append(failures, o)
		}
	}
	return failures
}
