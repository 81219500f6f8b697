package enrich

import (
	"context"
	"fmt"
	"strings"

	"curator/internal/ports"
)

const defaultTargetLanguage = "Korean"

// Translator turns an English summary into the configured target language
// with a single completion call.
type Translator struct {
	client         ports.CompletionClient
	targetLanguage string
}

// NewTranslator wires a completion client; an empty language falls back to
// the default target.
func NewTranslator(client ports.CompletionClient, targetLanguage string) *Translator {
	if strings.TrimSpace(targetLanguage) == "" {
		targetLanguage = defaultTargetLanguage
	}
	return &Translator{client: client, targetLanguage: targetLanguage}
}

// Translate returns the translated text. Empty input yields an empty result
// with no error; there is nothing to translate.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	system := fmt.Sprintf("You are a helpful assistant that translates English text to %s.", t.targetLanguage)
	user := fmt.Sprintf("Please translate the following English text accurately to %s:\n\n%s", t.targetLanguage, text)

	out, err := t.client.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", t.targetLanguage, err)
	}
	return strings.TrimSpace(out), nil
}
