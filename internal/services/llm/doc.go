// Package llm provides a minimal OpenAI-compatible chat completion client
// for transcript summarization against a local inference server.
package llm
