// Package services defines shared utilities consumed by the transcription
// driver and the external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so resolver, orchestrator,
//     and converter failures classify consistently at the CLI boundary.
//   - Thin abstractions that make command execution against external tools
//     (ffmpeg, the Whisper CLI, a local LLM endpoint) testable.
//
// Use these helpers when wiring new commands so user-visible error handling
// stays uniform across both binaries.
package services
