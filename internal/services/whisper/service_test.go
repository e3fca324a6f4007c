package whisper_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/services"
	"scribe/internal/services/whisper"
)

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestTranscribeBuildsArgsAndParsesOutput(t *testing.T) {
	svc := whisper.NewService(whisper.Config{Device: "cpu", BeamSize: 7, VADFilter: true})

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		outputDir := argValue(args, "--output_dir")
		if outputDir == "" {
			t.Fatal("missing --output_dir")
		}
		body := `{"segments":[{"start":0,"end":2.5,"text":" hello"},{"start":2.5,"end":4,"text":" world"}],"language":"en"}`
		return os.WriteFile(filepath.Join(outputDir, "clip.json"), []byte(body), 0o644)
	})

	segments, err := svc.Transcribe(context.Background(), "/media/clip.wav", "large-v3", "cantonese")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Start != 2.5 || segments[1].CleanText() != "world" {
		t.Fatalf("unexpected second segment %+v", segments[1])
	}

	if gotName != whisper.DefaultBinary {
		t.Fatalf("expected launcher %q, got %q", whisper.DefaultBinary, gotName)
	}
	if gotArgs[0] != whisper.DefaultTool || gotArgs[1] != "/media/clip.wav" {
		t.Fatalf("unexpected leading args %v", gotArgs[:2])
	}
	if argValue(gotArgs, "--model") != "large-v3" {
		t.Fatalf("model not forwarded: %v", gotArgs)
	}
	if argValue(gotArgs, "--language") != "yue" {
		t.Fatalf("language hint not normalized: %v", gotArgs)
	}
	if argValue(gotArgs, "--beam_size") != "7" {
		t.Fatalf("beam size not forwarded: %v", gotArgs)
	}
	if argValue(gotArgs, "--vad_filter") != "True" {
		t.Fatalf("vad filter not forwarded: %v", gotArgs)
	}
}

func TestTranscribeAutoDetectOmitsLanguage(t *testing.T) {
	svc := whisper.NewService(whisper.Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if argValue(args, "--language") != "" {
			t.Fatalf("auto-detect should omit --language: %v", args)
		}
		outputDir := argValue(args, "--output_dir")
		return os.WriteFile(filepath.Join(outputDir, "clip.json"), []byte(`{"segments":[]}`), 0o644)
	})
	if _, err := svc.Transcribe(context.Background(), "/media/clip.mp3", "", "auto"); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
}

func TestTranscribeWrapsToolFailure(t *testing.T) {
	svc := whisper.NewService(whisper.Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1: CUDA out of memory")
	})
	_, err := svc.Transcribe(context.Background(), "/media/clip.mp3", "base", "")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTranscribeRequiresSource(t *testing.T) {
	svc := whisper.NewService(whisper.Config{})
	if _, err := svc.Transcribe(context.Background(), "", "base", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
