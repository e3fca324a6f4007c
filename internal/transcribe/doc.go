// Package transcribe drives the sequential batch loop: for each resolved
// media file it invokes the external recognizer, renders the requested
// artifacts, and records the outcome. A single file's failure never aborts
// the batch; the aggregated RunSummary decides the process exit status.
//
// The recognizer and the audio extractor sit behind narrow interfaces so the
// loop is testable with fakes.
package transcribe
