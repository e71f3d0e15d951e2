package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGetNewUUID(t *testing.T) {
	first := GetNewUUID()
	second := GetNewUUID()

	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("GetNewUUID returned unparseable id %q: %v", first, err)
	}
	if first == second {
		t.Error("two generated ids are equal")
	}
}

func TestFormatTimestamp(t *testing.T) {
	formatted := FormatTimestamp(time.Date(2024, 5, 3, 10, 30, 0, 123456000, time.UTC))

	if !strings.HasSuffix(formatted, "Z") {
		t.Errorf("timestamp %q lacks the Z suffix", formatted)
	}
	if formatted != "2024-05-03T10:30:00.123456Z" {
		t.Errorf("timestamp = %q, want 2024-05-03T10:30:00.123456Z", formatted)
	}

	// non-UTC inputs are normalized
	est := time.FixedZone("EST", -5*3600)
	shifted := FormatTimestamp(time.Date(2024, 5, 3, 5, 30, 0, 0, est))
	if shifted != "2024-05-03T10:30:00.000000Z" {
		t.Errorf("timestamp = %q, want 2024-05-03T10:30:00.000000Z", shifted)
	}
}
