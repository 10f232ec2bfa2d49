// Package classifier derives a (sentiment, urgency) classification from
// free-text feedback via an external inference call.
package classifier

import (
	"context"
	"fmt"

	"pulse-backend/internal/models"
)

// InferenceClient is the capability the engine needs from a text-generation
// backend: one prompt in, one textual response out.
type InferenceClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const promptTemplate = `You are a customer feedback triage assistant. Classify the feedback below.

Respond with a single JSON object and nothing else, with exactly two fields:
- "sentiment": one of "positive", "neutral", "negative"
- "urgency": an integer from 1 to 5, where:
  1 = compliment or minor request
  2 = standard feature request
  3 = usability issue or moderate bug
  4 = significant problem impacting user experience
  5 = crash, data loss, security issue, or complete blocker

Feedback: %s`

// Engine builds the classification prompt, invokes the inference client and
// validates its output into the canonical classification domain.
type Engine struct {
	client InferenceClient
}

func NewEngine(client InferenceClient) *Engine {
	return &Engine{client: client}
}

// Classify returns the classification for text, or an error when the
// inference call fails or its output violates the contract. It never invents
// a default classification.
func (e *Engine) Classify(ctx context.Context, text string) (models.Classification, error) {
	prompt := fmt.Sprintf(promptTemplate, text)

	raw, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return models.Classification{}, fmt.Errorf("inference call failed: %w", err)
	}

	return parseResponse(raw)
}
