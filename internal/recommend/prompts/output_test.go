package prompts

import (
	"errors"
	"testing"
)

func timelinePrompt(t *testing.T) Prompt {
	t.Helper()
	p, err := Build(PromptGenerateTimeline, Input{Grade: "12", Goals: "scholarships", Universities: "McGill"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestValidateOutputRejectsMissingMilestones(t *testing.T) {
	p := timelinePrompt(t)
	err := ValidateOutput(p, map[string]any{"steps": []any{}})
	if !errors.Is(err, ErrOutputInvalid) {
		t.Fatalf("expected ErrOutputInvalid, got %v", err)
	}
	var oe *OutputError
	if !errors.As(err, &oe) || len(oe.Problems) == 0 {
		t.Fatalf("expected problems, got %v", err)
	}
}

func TestValidateOutputRejectsNil(t *testing.T) {
	if err := ValidateOutput(timelinePrompt(t), nil); !errors.Is(err, ErrOutputInvalid) {
		t.Fatalf("expected ErrOutputInvalid, got %v", err)
	}
}

func TestDecodeTimeline(t *testing.T) {
	p := timelinePrompt(t)
	var out struct {
		Milestones []struct {
			Date string `json:"date"`
			Task string `json:"task"`
		} `json:"milestones"`
	}
	err := Decode(p, map[string]any{
		"milestones": []any{map[string]any{"date": "September 2026", "task": "Shortlist programs"}},
	}, &out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Milestones) != 1 || out.Milestones[0].Task != "Shortlist programs" {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestAdmissionPercentageBounds(t *testing.T) {
	p, err := Build(PromptCalculateAdmissionChance, Input{
		Grades: "95", Extracurriculars: "robotics", Awards: "none", EssayQuality: "Good",
		TargetUniversity: "Waterloo", TargetProgram: "Software Engineering",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ValidateOutput(p, map[string]any{"admissionChancePercentage": 140.0, "analysis": "x"}); !errors.Is(err, ErrOutputInvalid) {
		t.Fatalf("expected out-of-range percentage to fail, got %v", err)
	}
	if err := ValidateOutput(p, map[string]any{"admissionChancePercentage": 42.5, "analysis": "x"}); err != nil {
		t.Fatalf("expected valid output, got %v", err)
	}
}

func TestECImpactRequiresExactlyThree(t *testing.T) {
	p, err := Build(PromptSuggestECImpact, Input{ActivityName: "Debate", ActivityDescription: "captain"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ValidateOutput(p, map[string]any{"suggestions": []any{"a", "b"}}); !errors.Is(err, ErrOutputInvalid) {
		t.Fatalf("expected two suggestions to fail, got %v", err)
	}
	if err := ValidateOutput(p, map[string]any{"suggestions": []any{"a", "b", "c"}}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestFeatureNamesConstrained(t *testing.T) {
	p, err := Build(PromptRecommendFeatures, Input{UserNeed: "I keep missing deadlines"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bad := map[string]any{
		"recommendedFeatures":  []any{map[string]any{"featureName": "Mind Reader", "justification": "x"}},
		"overallJustification": "x",
	}
	if err := ValidateOutput(p, bad); !errors.Is(err, ErrOutputInvalid) {
		t.Fatalf("expected unknown feature to fail, got %v", err)
	}
}
