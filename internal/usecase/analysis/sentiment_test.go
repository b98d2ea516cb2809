package analysis

import (
	"testing"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

func TestAnalyzeSentiment(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		sentiment string
		priority  string
	}{
		{
			name:      "positive high confidence",
			text:      "Great work, thanks! The demo was excellent and everyone was happy.",
			sentiment: entities.SentimentPositive,
			priority:  entities.PriorityLowPositive,
		},
		{
			name:      "negative high confidence",
			text:      "This is a terrible problem, the release failed and the build is broken.",
			sentiment: entities.SentimentNegative,
			priority:  entities.PriorityHighNegative,
		},
		{
			name:      "urgency dominates positive sentiment",
			text:      "Great news, but this is urgent and must ship before the deadline.",
			sentiment: entities.SentimentPositive,
			priority:  entities.PriorityHighUrgent,
		},
		{
			name:      "neutral text",
			text:      "The meeting notes are attached for review.",
			sentiment: entities.SentimentNeutral,
			priority:  entities.PriorityMedium,
		},
		{
			name:      "mixed sentiment stays medium",
			text:      "The demo was great but the deployment failed.",
			sentiment: entities.SentimentNeutral,
			priority:  entities.PriorityMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := AnalyzeSentiment(tc.text)
			if result.Sentiment != tc.sentiment {
				t.Fatalf("expected sentiment %s, got %s (confidence %.2f)", tc.sentiment, result.Sentiment, result.Confidence)
			}
			if result.Priority != tc.priority {
				t.Fatalf("expected priority %q, got %q", tc.priority, result.Priority)
			}
		})
	}
}

func TestAnalyzeSentiment_StripsPunctuation(t *testing.T) {
	result := AnalyzeSentiment("Thanks!!! That was (great).")
	if result.Sentiment != entities.SentimentPositive {
		t.Fatalf("expected POSITIVE, got %s", result.Sentiment)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %.2f", result.Confidence)
	}
}

func TestAnalyzeSentiment_NeutralConfidence(t *testing.T) {
	result := AnalyzeSentiment("See you at the office.")
	if result.Confidence != 0.5 {
		t.Fatalf("expected neutral confidence 0.5, got %.2f", result.Confidence)
	}
}
