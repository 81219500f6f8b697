package enrich

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	out    string
	err    error
	system string
	user   string
}

func (c *recordingClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.system = system
	c.user = user
	return c.out, c.err
}

func TestTranslateEmptyInput(t *testing.T) {
	t.Parallel()

	client := &recordingClient{out: "should not be called"}
	tr := NewTranslator(client, "Korean")

	out, err := tr.Translate(context.Background(), "  ")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Empty(t, client.user, "no completion call expected for empty input")
}

func TestTranslateSuccess(t *testing.T) {
	t.Parallel()

	client := &recordingClient{out: "  요약입니다  "}
	tr := NewTranslator(client, "Korean")

	out, err := tr.Translate(context.Background(), "the summary")
	require.NoError(t, err)
	require.Equal(t, "요약입니다", out)
	require.Contains(t, client.system, "Korean")
	require.Contains(t, client.user, "the summary")
}

func TestTranslateDefaultLanguage(t *testing.T) {
	t.Parallel()

	client := &recordingClient{out: "x"}
	tr := NewTranslator(client, "")

	_, err := tr.Translate(context.Background(), "text")
	require.NoError(t, err)
	require.Contains(t, client.system, "Korean")
}

func TestTranslateProviderError(t *testing.T) {
	t.Parallel()

	tr := NewTranslator(&recordingClient{err: fmt.Errorf("quota exceeded")}, "German")
	out, err := tr.Translate(context.Background(), "text")
	require.Error(t, err)
	require.Empty(t, out)
}
