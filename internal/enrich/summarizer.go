package enrich

import (
	"context"
	"fmt"
	"strings"

	"curator/internal/ports"
)

const (
	defaultChunkRunes   = 6000
	defaultOverlapRunes = 200

	summarizeSystemPrompt = "You are a helpful assistant that writes concise abstractive summaries of technical articles."
	reduceSystemPrompt    = "You are a helpful assistant that combines partial summaries of one article into a single coherent summary."
)

// Summarizer produces a single summary from possibly long document text by
// summarizing fixed-size chunks and then summarizing the chunk summaries.
type Summarizer struct {
	client       ports.CompletionClient
	chunkRunes   int
	overlapRunes int
}

// NewSummarizer wires a completion client; non-positive sizes fall back to
// the default chunk policy.
func NewSummarizer(client ports.CompletionClient, chunkRunes, overlapRunes int) *Summarizer {
	if chunkRunes <= 0 {
		chunkRunes = defaultChunkRunes
	}
	if overlapRunes < 0 || overlapRunes >= chunkRunes {
		overlapRunes = defaultOverlapRunes
	}
	return &Summarizer{client: client, chunkRunes: chunkRunes, overlapRunes: overlapRunes}
}

// Summarize runs the map-reduce summarization. An empty result with a nil
// error means the provider produced no usable output; the caller decides how
// to report that.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	chunks := splitChunks(text, s.chunkRunes, s.overlapRunes)

	if len(chunks) == 1 {
		out, err := s.client.Complete(ctx, summarizeSystemPrompt,
			"Please summarize the following article:\n\n"+chunks[0])
		if err != nil {
			return "", fmt.Errorf("summarize: %w", err)
		}
		return strings.TrimSpace(out), nil
	}

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := s.client.Complete(ctx, summarizeSystemPrompt,
			"Please summarize the following part of an article:\n\n"+chunk)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if out = strings.TrimSpace(out); out != "" {
			partials = append(partials, out)
		}
	}

	if len(partials) == 0 {
		return "", nil
	}

	out, err := s.client.Complete(ctx, reduceSystemPrompt,
		"Please combine the following partial summaries into one summary:\n\n"+strings.Join(partials, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("reduce summaries: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// splitChunks slices text into rune-budget windows, preferring to break at a
// word boundary, with a fixed overlap carried between consecutive chunks.
func splitChunks(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		cut := end
		for cut > start+size/2 && !isSpace(runes[cut-1]) {
			cut--
		}
		if cut == start+size/2 {
			cut = end
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:cut])))
		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
