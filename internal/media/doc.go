// Package media discovers transcription candidates on disk.
//
// It owns the supported extension sets, classifies files as audio or video,
// and resolves an operator-supplied path (single file or directory tree) into
// a deterministic, lexicographically ordered list of MediaFile values. All
// downstream batch work consumes the resolver's output so that repeated runs
// over an unchanged tree process the same files in the same order.
package media
