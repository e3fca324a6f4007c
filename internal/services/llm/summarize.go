package llm

import (
	"context"
	"fmt"
	"strings"
)

const summarySystemPrompt = "You are a careful editor. Summarize the transcript excerpt you are " +
	"given into a few short paragraphs, keeping speaker intent, decisions, and " +
	"any concrete facts. Respond with plain text only."

const combineSystemPrompt = "You are a careful editor. The user gives you several partial " +
	"summaries of one transcript, in order. Merge them into a single coherent " +
	"summary with no repetition. Respond with plain text only."

// Summarize produces a summary of transcript text. Long transcripts are cut
// into chunks of at most chunkChars characters (split on line boundaries),
// summarized independently, then combined in a final pass.
func Summarize(ctx context.Context, client *Client, text string, chunkChars int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("summarize: empty transcript")
	}
	if chunkChars <= 0 {
		chunkChars = 6000
	}

	chunks := splitChunks(text, chunkChars)
	if len(chunks) == 1 {
		return client.Complete(ctx, summarySystemPrompt, chunks[0])
	}

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		partial, err := client.Complete(ctx, summarySystemPrompt, chunk)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		partials = append(partials, partial)
	}
	return client.Complete(ctx, combineSystemPrompt, strings.Join(partials, "\n\n"))
}

// splitChunks cuts text into pieces of at most limit characters, preferring
// line boundaries so segments stay intact.
func splitChunks(text string, limit int) []string {
	lines := strings.Split(text, "\n")
	var chunks []string
	var current strings.Builder
	for _, line := range lines {
		if current.Len() > 0 && current.Len()+len(line)+1 > limit {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	if len(chunks) == 0 {
		chunks = []string{text}
	}
	return chunks
}
