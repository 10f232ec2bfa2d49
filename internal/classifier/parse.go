package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pulse-backend/internal/models"
)

// ErrUnparseableResponse is returned when the model response contains no JSON object.
var ErrUnparseableResponse = errors.New("no JSON object found in model response")

// ErrInvalidClassification is returned when the model response decodes but
// violates the classification contract (unknown sentiment, urgency outside 1-5).
var ErrInvalidClassification = errors.New("model response violates classification contract")

// objectPattern matches the first balanced brace pair with no nested braces.
// Best-effort fallback for responses that wrap the JSON in prose or fences.
var objectPattern = regexp.MustCompile(`\{[^{}]*\}`)

type rawClassification struct {
	Sentiment string          `json:"sentiment"`
	Urgency   json.RawMessage `json:"urgency"`
}

// parseResponse extracts and validates the classification from a raw model
// response. A strict decode of the whole response is attempted first; the
// substring extraction is only a fallback.
func parseResponse(resp string) (models.Classification, error) {
	body := strings.TrimSpace(resp)

	var raw rawClassification
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		match := objectPattern.FindString(body)
		if match == "" {
			return models.Classification{}, ErrUnparseableResponse
		}
		if err := json.Unmarshal([]byte(match), &raw); err != nil {
			return models.Classification{}, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
		}
	}

	urgency, err := coerceUrgency(raw.Urgency)
	if err != nil {
		return models.Classification{}, err
	}

	c := models.Classification{Sentiment: raw.Sentiment, Urgency: urgency}
	if !models.ValidSentiment(c.Sentiment) {
		return models.Classification{}, fmt.Errorf("%w: unknown sentiment %q", ErrInvalidClassification, c.Sentiment)
	}
	if c.Urgency < models.UrgencyMin || c.Urgency > models.UrgencyMax {
		return models.Classification{}, fmt.Errorf("%w: urgency %d outside [%d,%d]", ErrInvalidClassification, c.Urgency, models.UrgencyMin, models.UrgencyMax)
	}
	return c, nil
}

// coerceUrgency accepts a JSON number or a quoted integer string.
func coerceUrgency(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("%w: urgency missing", ErrInvalidClassification)
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: urgency %q is not an integer", ErrInvalidClassification, s)
	}
	return n, nil
}
