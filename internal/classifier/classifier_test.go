package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pulse-backend/internal/models"
)

type fakeInference struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeInference) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestClassifyEmbedsFeedbackInPrompt(t *testing.T) {
	client := &fakeInference{response: `{"sentiment": "neutral", "urgency": 2}`}
	engine := NewEngine(client)

	text := "Please add a dark mode option"
	if _, err := engine.Classify(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("expected 1 inference call, got %d", len(client.prompts))
	}
	if !strings.Contains(client.prompts[0], text) {
		t.Fatalf("prompt does not embed the feedback text: %q", client.prompts[0])
	}
}

func TestClassifyHappyPath(t *testing.T) {
	engine := NewEngine(&fakeInference{response: `{"sentiment": "negative", "urgency": 5}`})

	c, err := engine.Classify(context.Background(), "the app crashes on launch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.Classification{Sentiment: models.SentimentNegative, Urgency: 5}
	if c != want {
		t.Fatalf("got %+v want %+v", c, want)
	}
}

func TestClassifyInferenceFailure(t *testing.T) {
	inferenceErr := errors.New("model unreachable")
	engine := NewEngine(&fakeInference{err: inferenceErr})

	if _, err := engine.Classify(context.Background(), "anything"); !errors.Is(err, inferenceErr) {
		t.Fatalf("expected wrapped inference error, got %v", err)
	}
}
