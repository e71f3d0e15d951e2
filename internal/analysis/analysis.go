// Package analysis fabricates the "AI" part of the document processing API.
// Statistics are real measurements of the submitted content; the entities,
// key phrases and sentiment are fixed canned values regardless of input.
package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
)

func ComputeStatistics(content string) documentModel.Statistics {
	return documentModel.Statistics{
		CharacterCount: utf8.RuneCountInString(content),
		WordCount:      len(strings.Fields(content)),
		SizeBytes:      len(content),
	}
}

// MockResult returns the same analysis for every document. There is no model
// behind this service; the shape is what downstream consumers integrate against.
func MockResult() documentModel.Analysis {
	return documentModel.Analysis{
		Entities: []documentModel.Entity{
			{Text: "Azure", Type: "Technology", Confidence: 0.95},
			{Text: "Container Apps", Type: "Service", Confidence: 0.93},
			{Text: "document", Type: "Concept", Confidence: 0.87},
		},
		KeyPhrases: []string{
			"document processing",
			"container deployment",
			"secrets and configuration",
			"revision management",
		},
		Sentiment: documentModel.Sentiment{
			Overall:    "neutral",
			Confidence: 0.78,
			Scores: documentModel.SentimentScores{
				Positive: 0.22,
				Neutral:  0.68,
				Negative: 0.10,
			},
		},
	}
}
