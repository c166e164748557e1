package utils

import (
	"regexp"
	"testing"
)

func TestGenerateOTPCode(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code := GenerateOTPCode()
		if !sixDigits.MatchString(code) {
			t.Fatalf("code %q is not six digits", code)
		}
		seen[code] = true
	}

	if len(seen) < 2 {
		t.Errorf("50 generated codes were all identical, randomness looks broken")
	}
}

func TestCalculateConsistencyScore(t *testing.T) {
	if got := CalculateConsistencyScore(0, 0, 0); got != 0 {
		t.Errorf("score for a new user = %f, want 0", got)
	}

	low := CalculateConsistencyScore(2, 10, 12)
	high := CalculateConsistencyScore(10, 40, 55)
	if high <= low {
		t.Errorf("more activity should score higher: %f <= %f", high, low)
	}
}
