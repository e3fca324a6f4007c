package transcribe_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
	"scribe/internal/subtitles"
	"scribe/internal/transcribe"
)

type fakeTranscriber struct {
	segments []subtitles.Segment
	failOn   map[string]error
	calls    []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, source, model, language string) ([]subtitles.Segment, error) {
	f.calls = append(f.calls, source)
	if err, ok := f.failOn[filepath.Base(source)]; ok {
		return nil, err
	}
	return f.segments, nil
}

type fakeExtractor struct {
	calls []string
	fail  error
}

func (f *fakeExtractor) ExtractAudio(ctx context.Context, source, dest string) error {
	f.calls = append(f.calls, source)
	if f.fail != nil {
		return f.fail
	}
	return os.WriteFile(dest, []byte("wav"), 0o644)
}

func defaultSegments() []subtitles.Segment {
	return []subtitles.Segment{
		{Start: 0, End: 2.5, Text: "hello"},
		{Start: 2.5, End: 4, Text: "world"},
	}
}

func mediaFiles(dir string, names ...string) []media.MediaFile {
	files := make([]media.MediaFile, 0, len(names))
	for _, name := range names {
		kind, ok := media.Classify(name)
		if !ok {
			panic("unsupported test extension " + name)
		}
		files = append(files, media.MediaFile{Path: filepath.Join(dir, name), Kind: kind})
	}
	return files
}

func TestRunWritesSubtitlesForEachFile(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTranscriber{segments: defaultSegments()}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	job := transcribe.BatchJob{
		InputPath: dir,
		Files:     mediaFiles(dir, "a.mp3", "b.wav"),
		Model:     "base",
	}
	summary, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Succeeded() != 2 || summary.Failed() != 0 {
		t.Fatalf("unexpected counts %d/%d", summary.Succeeded(), summary.Failed())
	}
	for _, name := range []string{"a.srt", "b.srt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Error("text artifact should not be written without the flag")
	}
}

func TestRunContinuesPastSingleFailure(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTranscriber{
		segments: defaultSegments(),
		failOn:   map[string]error{"bad.mp3": errors.New("corrupted media")},
	}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	job := transcribe.BatchJob{
		Files: mediaFiles(dir, "a.mp3", "bad.mp3", "c.mp3"),
		Model: "base",
	}
	summary, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Succeeded() != 2 || summary.Failed() != 1 {
		t.Fatalf("expected 2/1, got %d/%d", summary.Succeeded(), summary.Failed())
	}
	failures := summary.Failures()
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if filepath.Base(failures[0].File.Path) != "bad.mp3" {
		t.Fatalf("wrong failing file %q", failures[0].File.Path)
	}
	if !strings.Contains(failures[0].Err.Error(), "corrupted media") {
		t.Fatalf("failure cause lost: %v", failures[0].Err)
	}
	// Artifacts for the survivors still exist.
	for _, name := range []string{"a.srt", "c.srt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.srt")); !os.IsNotExist(err) {
		t.Error("failed file should not leave an artifact")
	}
}

func TestRunExtractsAudioForVideo(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTranscriber{segments: defaultSegments()}
	fe := &fakeExtractor{}
	orch := transcribe.NewOrchestrator(ft, fe, logging.NewNop())

	job := transcribe.BatchJob{
		Files: mediaFiles(dir, "movie.mp4"),
		Model: "base",
	}
	summary, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Failed() != 0 {
		t.Fatalf("unexpected failures: %+v", summary.Failures())
	}
	if len(fe.calls) != 1 {
		t.Fatalf("expected one extraction, got %d", len(fe.calls))
	}
	if len(ft.calls) != 1 || !strings.HasSuffix(ft.calls[0], "movie.wav") {
		t.Fatalf("transcriber should consume the temp wav, got %v", ft.calls)
	}
	// The temp wav must live outside the output directory so a crashed run
	// cannot leave a file a later scan would pick up, and its directory must
	// be gone once the file is done.
	if strings.HasPrefix(ft.calls[0], dir) {
		t.Fatalf("temp wav written inside the output directory: %q", ft.calls[0])
	}
	if _, err := os.Stat(filepath.Dir(ft.calls[0])); !os.IsNotExist(err) {
		t.Error("temp extraction directory should be cleaned up")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".wav") {
			t.Errorf("stray wav left in output directory: %s", entry.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "movie.srt")); err != nil {
		t.Errorf("subtitle named after the original stem: %v", err)
	}
}

func TestRunHonorsOutputDirAndOptionalArtifacts(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out", "nested")
	ft := &fakeTranscriber{segments: defaultSegments()}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	job := transcribe.BatchJob{
		Files:     mediaFiles(dir, "talk.m4a"),
		Model:     "large-v3",
		OutputDir: outDir,
		WriteText: true,
		WriteLRC:  true,
	}
	summary, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Failed() != 0 {
		t.Fatalf("unexpected failures: %+v", summary.Failures())
	}
	for _, name := range []string{"talk.srt", "talk.txt", "talk.lrc"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
	if len(summary.Outcomes[0].Artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %v", summary.Outcomes[0].Artifacts)
	}
}

func TestRunRecordsWriteFailureAndContinues(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	// A file where the output directory should be makes MkdirAll fail.
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ft := &fakeTranscriber{segments: defaultSegments()}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	okDir := filepath.Join(dir, "ok")
	if err := os.MkdirAll(okDir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	files := []media.MediaFile{
		{Path: filepath.Join(blocked, "a.mp3"), Kind: media.KindAudio},
		{Path: filepath.Join(okDir, "b.mp3"), Kind: media.KindAudio},
	}
	summary, err := orch.Run(context.Background(), transcribe.BatchJob{Files: files, Model: "base"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Succeeded() != 1 || summary.Failed() != 1 {
		t.Fatalf("expected 1/1, got %d/%d", summary.Succeeded(), summary.Failed())
	}
	if _, err := os.Stat(filepath.Join(okDir, "b.srt")); err != nil {
		t.Errorf("surviving file artifact missing: %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ft := &fakeTranscriber{segments: defaultSegments()}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())
	summary, err := orch.Run(ctx, transcribe.BatchJob{Files: mediaFiles(dir, "a.mp3")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summary.Outcomes) != 0 {
		t.Fatalf("no files should be processed after cancel, got %d", len(summary.Outcomes))
	}
}

func TestRunAbortsOnFatalError(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTranscriber{
		segments: defaultSegments(),
		failOn: map[string]error{
			"a.mp3": services.Wrap(services.ErrCancelled, "whisper", "transcribe", "interrupted", nil),
		},
	}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	summary, err := orch.Run(context.Background(), transcribe.BatchJob{
		Files: mediaFiles(dir, "a.mp3", "b.mp3"),
	})
	if !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected cancellation to propagate, got %v", err)
	}
	if len(summary.Outcomes) != 1 {
		t.Fatalf("remaining files must not be processed, got %d outcomes", len(summary.Outcomes))
	}
	if len(ft.calls) != 1 {
		t.Fatalf("expected one transcriber call, got %d", len(ft.calls))
	}
}

func TestRunCallbacksFireInOrder(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTranscriber{segments: defaultSegments()}
	orch := transcribe.NewOrchestrator(ft, &fakeExtractor{}, logging.NewNop())

	var starts, dones []string
	orch.OnFileStart = func(index, total int, file media.MediaFile) {
		starts = append(starts, filepath.Base(file.Path))
		if total != 2 {
			t.Errorf("unexpected total %d", total)
		}
	}
	orch.OnFileDone = func(outcome transcribe.FileOutcome) {
		dones = append(dones, filepath.Base(outcome.File.Path))
	}

	_, err := orch.Run(context.Background(), transcribe.BatchJob{
		Files: mediaFiles(dir, "a.mp3", "b.mp3"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.Join(starts, ",") != "a.mp3,b.mp3" || strings.Join(dones, ",") != "a.mp3,b.mp3" {
		t.Fatalf("callback order wrong: starts=%v dones=%v", starts, dones)
	}
}
