package squat

import (
	"strings"
	"testing"
)

func TestFeedback_KneeClause(t *testing.T) {
	tests := []struct {
		knee float64
		want string
	}{
		{175, "Too shallow - go deeper"},
		{170, "Too shallow - go deeper"},
		{150, "Shallow squat - try for more depth"},
		{136, "Shallow squat - try for more depth"},
		{135, "Perfect depth!"},
		{110, "Perfect depth!"},
		{100, "Good depth"},
		{90, "Good depth"},
		{80, "Parallel depth achieved"},
		{70, "Parallel depth achieved"},
		{55, "Very deep - be careful"},
	}

	for _, tt := range tests {
		got := Feedback(tt.knee, 35)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("Feedback(%v, 35) = %q, want knee clause %q", tt.knee, got, tt.want)
		}
	}
}

func TestFeedback_TorsoClause(t *testing.T) {
	tests := []struct {
		torso float64
		want  string
	}{
		{30, "Good torso position"},
		{45, "Good torso position"},
		{29.9, "Torso too upright"},
		{10, "Torso too upright"},
		{46, "Slight forward lean"},
		{60, "Slight forward lean"},
		{61, "Too much forward lean"},
		{90, "Too much forward lean"},
	}

	for _, tt := range tests {
		got := Feedback(120, tt.torso)
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("Feedback(120, %v) = %q, want torso clause %q", tt.torso, got, tt.want)
		}
	}
}

func TestFeedback_TwoClausesJoined(t *testing.T) {
	got := Feedback(100, 38)
	parts := strings.Split(got, " | ")
	if len(parts) != 2 {
		t.Fatalf("Feedback() = %q, want exactly two clauses", got)
	}
	if parts[0] != "Good depth" || parts[1] != "Good torso position" {
		t.Errorf("Feedback() clauses = %v", parts)
	}
}

func TestFeedback_Idempotent(t *testing.T) {
	first := Feedback(117.3, 41.8)
	second := Feedback(117.3, 41.8)
	if first != second {
		t.Errorf("Feedback not idempotent: %q vs %q", first, second)
	}
}
