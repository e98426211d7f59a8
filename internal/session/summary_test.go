package session

import (
	"testing"
	"time"
)

func TestBuildSummary(t *testing.T) {
	state := SessionState{
		SessionID: "abc",
		Mode:      ModeTimed,
		Score:     8,
		EndReason: EndExercises,
		Correct:   4,
		Incorrect: 2,
		Invalid:   1,
		Timeouts:  1,
		Late:      2,
		StartedAt: t0,
		EndedAt:   t0.Add(90 * time.Second),
	}

	sum := BuildSummary(state)

	if sum.Resolved != 8 {
		t.Errorf("Resolved = %d, want 8", sum.Resolved)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if sum.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", sum.Duration)
	}
	if sum.Score != 8 || sum.Reason != EndExercises || sum.Late != 2 || sum.Mode != ModeTimed {
		t.Errorf("summary = %+v", sum)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	sum := BuildSummary(SessionState{StartedAt: t0})
	if sum.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0", sum.Accuracy)
	}
	if sum.Duration != 0 {
		t.Errorf("Duration = %v, want 0 for an unfinished session", sum.Duration)
	}
}

func TestOutcomeScored(t *testing.T) {
	scored := map[Outcome]bool{
		OutcomeCorrect:   true,
		OutcomeIncorrect: true,
		OutcomeInvalid:   true,
		OutcomeTimeout:   true,
		OutcomeLate:      false,
		OutcomeIgnored:   false,
		OutcomeGameOver:  false,
	}
	for o, want := range scored {
		if o.Scored() != want {
			t.Errorf("%s.Scored() = %v, want %v", o, o.Scored(), want)
		}
	}
}
