package analysis

import (
	"strings"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// Word lists for the lexicon heuristic. Matching is whole-word and
// case-insensitive.
var positiveWords = []string{
	"great", "good", "excellent", "thanks", "thank", "appreciate", "happy",
	"glad", "wonderful", "perfect", "awesome", "pleased", "love", "helpful",
	"congratulations", "well",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "angry", "upset", "disappointed", "problem",
	"issue", "fail", "failed", "wrong", "hate", "frustrated", "complaint",
	"broken", "unacceptable", "sorry",
}

var urgencyKeywords = []string{
	"urgent", "asap", "immediately", "deadline", "important", "critical",
}

// SentimentResult is the outcome of scoring one message body.
type SentimentResult struct {
	Sentiment  string
	Confidence float64
	Priority   string
}

// AnalyzeSentiment scores the text with the word lexicon and derives a
// priority tier. Urgency keywords dominate sentiment for prioritization.
func AnalyzeSentiment(text string) SentimentResult {
	words := strings.Fields(strings.ToLower(text))

	positives := 0
	negatives := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if containsWord(positiveWords, w) {
			positives++
		}
		if containsWord(negativeWords, w) {
			negatives++
		}
	}

	sentiment := entities.SentimentNeutral
	confidence := 0.5
	total := positives + negatives
	if total > 0 {
		if positives > negatives {
			sentiment = entities.SentimentPositive
			confidence = float64(positives) / float64(total)
		} else if negatives > positives {
			sentiment = entities.SentimentNegative
			confidence = float64(negatives) / float64(total)
		}
	}

	lower := strings.ToLower(text)
	priority := entities.PriorityMedium
	switch {
	case containsAny(lower, urgencyKeywords):
		priority = entities.PriorityHighUrgent
	case sentiment == entities.SentimentNegative && confidence > 0.75:
		priority = entities.PriorityHighNegative
	case sentiment == entities.SentimentPositive && confidence > 0.75:
		priority = entities.PriorityLowPositive
	}

	return SentimentResult{
		Sentiment:  sentiment,
		Confidence: confidence,
		Priority:   priority,
	}
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
