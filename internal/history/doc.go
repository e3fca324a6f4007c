// Package history persists transcription run summaries in a local SQLite
// database so `scribe history` can show what was processed, when, and with
// which outcome. Writes are serialized with a sidecar file lock because
// nothing stops two scribe invocations from finishing at the same time.
package history
