package analysis

import "testing"

func TestComputeStatistics(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		charCount int
		wordCount int
		sizeBytes int
	}{
		{"empty", "", 0, 0, 0},
		{"two words", "hello world", 11, 2, 11},
		{"extra whitespace", "  spaced\t\nout words  ", 21, 3, 21},
		{"multibyte runes", "héllo wörld", 11, 2, 13},
		{"single word", "word", 4, 1, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := ComputeStatistics(tc.content)
			if stats.CharacterCount != tc.charCount {
				t.Errorf("CharacterCount = %d, want %d", stats.CharacterCount, tc.charCount)
			}
			if stats.WordCount != tc.wordCount {
				t.Errorf("WordCount = %d, want %d", stats.WordCount, tc.wordCount)
			}
			if stats.SizeBytes != tc.sizeBytes {
				t.Errorf("SizeBytes = %d, want %d", stats.SizeBytes, tc.sizeBytes)
			}
		})
	}
}

func TestMockResult_StableShape(t *testing.T) {
	result := MockResult()

	if len(result.Entities) != 3 {
		t.Fatalf("Entities count = %d, want 3", len(result.Entities))
	}
	if result.Entities[0].Text != "Azure" || result.Entities[0].Type != "Technology" {
		t.Errorf("first entity = %+v, want Azure/Technology", result.Entities[0])
	}
	if len(result.KeyPhrases) != 4 {
		t.Fatalf("KeyPhrases count = %d, want 4", len(result.KeyPhrases))
	}
	if result.Sentiment.Overall != "neutral" {
		t.Errorf("Sentiment.Overall = %q, want neutral", result.Sentiment.Overall)
	}

	// same values for any caller - the analysis is canned
	again := MockResult()
	if again.Sentiment != result.Sentiment {
		t.Error("MockResult sentiment varies between calls")
	}
}
