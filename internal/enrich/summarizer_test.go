package enrich

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned outputs in call order.
type scriptedClient struct {
	outputs []string
	err     error
	calls   []string
}

func (c *scriptedClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.calls = append(c.calls, user)
	if c.err != nil {
		return "", c.err
	}
	if len(c.outputs) == 0 {
		return "", nil
	}
	out := c.outputs[0]
	c.outputs = c.outputs[1:]
	return out, nil
}

func TestSummarizeEmptyInput(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(&scriptedClient{}, 0, 0)
	out, err := s.Summarize(context.Background(), "   \n ")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSummarizeSingleChunk(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{outputs: []string{"  a short summary \n"}}
	s := NewSummarizer(client, 0, 0)

	out, err := s.Summarize(context.Background(), "some article body")
	require.NoError(t, err)
	require.Equal(t, "a short summary", out)
	require.Len(t, client.calls, 1)
}

func TestSummarizeMapReduce(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{outputs: []string{"part one", "part two", "combined"}}
	s := NewSummarizer(client, 150, 0)

	text := strings.TrimSpace(strings.Repeat("alpha beta gamma ", 12)) // ~200 runes, 2 chunks
	out, err := s.Summarize(context.Background(), text)
	require.NoError(t, err)
	require.Equal(t, "combined", out)
	require.Len(t, client.calls, 3)
	require.Contains(t, client.calls[2], "part one")
	require.Contains(t, client.calls[2], "part two")
}

func TestSummarizeEmptyProviderOutputIsSoftFail(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(&scriptedClient{outputs: []string{""}}, 0, 0)
	out, err := s.Summarize(context.Background(), "body")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSummarizeProviderError(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(&scriptedClient{err: fmt.Errorf("boom")}, 0, 0)
	_, err := s.Summarize(context.Background(), "body")
	require.Error(t, err)
}

func TestSplitChunks(t *testing.T) {
	t.Parallel()

	t.Run("short text stays whole", func(t *testing.T) {
		chunks := splitChunks("hello world", 100, 10)
		require.Equal(t, []string{"hello world"}, chunks)
	})

	t.Run("long text covers everything", func(t *testing.T) {
		text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor ", 50))
		chunks := splitChunks(text, 120, 20)
		require.Greater(t, len(chunks), 1)

		for _, chunk := range chunks {
			require.LessOrEqual(t, len([]rune(chunk)), 120)
			require.NotEmpty(t, chunk)
		}
		// Last words of the text must appear in the final chunk.
		require.Contains(t, chunks[len(chunks)-1], "dolor")
	})

	t.Run("breaks at word boundaries", func(t *testing.T) {
		text := strings.TrimSpace(strings.Repeat("abcde ", 40))
		chunks := splitChunks(text, 50, 5)
		for _, chunk := range chunks[:len(chunks)-1] {
			require.False(t, strings.HasSuffix(chunk, "abc"), "chunk split mid-word: %q", chunk)
		}
	})
}
