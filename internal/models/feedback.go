package models

import "time"

// Sentiment values assigned by classification. The submitter never sets these.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Urgency bounds. 1 = compliment/minor request, 5 = crash/data-loss/security/blocking.
const (
	UrgencyMin = 1
	UrgencyMax = 5
)

// Classification is the derived (sentiment, urgency) pair produced from
// feedback text by the inference call.
type Classification struct {
	Sentiment string `json:"sentiment"`
	Urgency   int    `json:"urgency"`
}

// Valid reports whether both fields are inside their allowed domains.
func (c Classification) Valid() bool {
	return ValidSentiment(c.Sentiment) && c.Urgency >= UrgencyMin && c.Urgency <= UrgencyMax
}

// ValidSentiment reports whether s is one of the three allowed sentiment values.
func ValidSentiment(s string) bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// FeedbackRecord is a persisted, fully classified feedback submission.
// A record either carries a valid classification or does not exist; there is
// no pending state visible to readers.
type FeedbackRecord struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	Urgency   int       `json:"urgency"`
	ImageKey  *string   `json:"image_key"`
	CreatedAt time.Time `json:"timestamp"`
}
