package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/data/repos/testutil"
	types "github.com/Dee1911/Aspire.can/internal/domain/recommend"
	"github.com/Dee1911/Aspire.can/internal/domain/user"
	"github.com/Dee1911/Aspire.can/internal/recommend/prompts"
)

func newRecommender(t *testing.T, gen Generator) (RecommendationService, fixture) {
	t.Helper()
	f := newFixture(t)
	return NewRecommendationService(testutil.Logger(t), gen, f.catalog, f.story), f
}

func TestGenerateTimeline(t *testing.T) {
	gen := &fakeGenerator{out: map[string]any{
		"milestones": []any{
			map[string]any{"date": "2025-10-01", "task": "Draft personal profile"},
			map[string]any{"date": "2026-01-15", "task": "Submit OUAC"},
		},
	}}
	rs, _ := newRecommender(t, gen)

	got, err := rs.GenerateTimeline(context.Background(), types.TimelineRequest{Grade: "12", Goals: "Engineering", Universities: "Waterloo, UBC"})
	require.NoError(t, err)
	assert.Equal(t, []types.Milestone{
		{Date: "2025-10-01", Task: "Draft personal profile"},
		{Date: "2026-01-15", Task: "Submit OUAC"},
	}, got.Milestones)
	require.Equal(t, 1, gen.callCount())
	assert.Contains(t, gen.calls[0].User, "Waterloo, UBC")
}

func TestGenerateTimelineRejectsMalformedOutput(t *testing.T) {
	gen := &fakeGenerator{out: map[string]any{"steps": []any{}}}
	rs, _ := newRecommender(t, gen)

	got, err := rs.GenerateTimeline(context.Background(), types.TimelineRequest{Grade: "11", Goals: "Medicine", Universities: "McMaster"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, prompts.ErrOutputInvalid))
	assert.Equal(t, 1, gen.callCount(), "no retry")
}

func TestGeneratorErrorIsGenerationFailed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 503")}
	rs, _ := newRecommender(t, gen)

	_, err := rs.AnalyzeEssay(context.Background(), types.EssayFeedbackRequest{EssayDraft: "I learned to code..."})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.False(t, errors.Is(err, prompts.ErrOutputInvalid))
	assert.Equal(t, 1, gen.callCount())
}

func TestMissingInputSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	rs, _ := newRecommender(t, gen)

	_, err := rs.CalculateAdmissionChance(context.Background(), types.AdmissionChanceRequest{Grades: "95"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompts.ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrGenerationFailed))
	assert.Equal(t, 0, gen.callCount())
}

func TestNilGenerator(t *testing.T) {
	rs, _ := newRecommender(t, nil)
	_, err := rs.RecommendFeatures(context.Background(), types.FeatureRequest{UserNeed: "I need help picking programs"})
	assert.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestAdmissionChanceOutOfRange(t *testing.T) {
	gen := &fakeGenerator{out: map[string]any{"admissionChancePercentage": 140, "analysis": "great"}}
	rs, _ := newRecommender(t, gen)
	_, err := rs.CalculateAdmissionChance(context.Background(), types.AdmissionChanceRequest{
		Grades: "95", Extracurriculars: "Robotics", Awards: "None", EssayQuality: "Good",
		TargetUniversity: "Waterloo", TargetProgram: "Software Engineering",
	})
	assert.True(t, errors.Is(err, prompts.ErrOutputInvalid))
}

func TestFindScholarshipsFallsBackToNarrative(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{out: map[string]any{"topMatches": []any{
		map[string]any{
			"name":          "Loran Award",
			"amount":        100000,
			"eligibility":   "Canadian citizens",
			"deadline":      "October",
			"website":       "https://loranscholar.ca",
			"justification": "Strong leadership",
		},
	}}}
	rs, f := newRecommender(t, gen)
	uid := testutil.UID()

	story := "Started a coding club"
	_, err := f.story.SaveStory(ctx, uid, user.StoryPatch{PersonalStory: &story})
	require.NoError(t, err)

	got, err := rs.FindScholarships(ctx, uid, types.ScholarshipRequest{})
	require.NoError(t, err)
	require.Len(t, got.TopMatches, 1)
	assert.Equal(t, float64(100000), got.TopMatches[0].Amount)

	prompt := gen.calls[0].User
	assert.Contains(t, prompt, "Personal Story: Started a coding club")
	assert.Contains(t, prompt, "Skills: Not provided.")
	for _, s := range f.catalog.Scholarships() {
		if !strings.Contains(prompt, s.Name) {
			t.Fatalf("catalog scholarship %q missing from prompt", s.Name)
		}
	}
}

func TestFindScholarshipsUsesExplicitProfile(t *testing.T) {
	gen := &fakeGenerator{out: map[string]any{"topMatches": []any{}}}
	rs, _ := newRecommender(t, gen)
	_, err := rs.FindScholarships(context.Background(), testutil.UID(), types.ScholarshipRequest{UserProfile: "First-generation student in STEM"})
	require.NoError(t, err)
	assert.Contains(t, gen.calls[0].User, "First-generation student in STEM")
	assert.NotContains(t, gen.calls[0].User, "Personal Story:")
}

func TestSuggestECImpactRequiresThree(t *testing.T) {
	gen := &fakeGenerator{out: map[string]any{"suggestions": []any{"Lead a workshop", "Track outcomes"}}}
	rs, _ := newRecommender(t, gen)
	_, err := rs.SuggestECImpact(context.Background(), types.ECImpactRequest{ActivityName: "Robotics", ActivityDescription: "Build robots"})
	assert.True(t, errors.Is(err, prompts.ErrOutputInvalid))

	gen.out = map[string]any{"suggestions": []any{"a", "b", "c"}}
	got, err := rs.SuggestECImpact(context.Background(), types.ECImpactRequest{ActivityName: "Robotics", ActivityDescription: "Build robots"})
	require.NoError(t, err)
	assert.Len(t, got.Suggestions, 3)
}

func TestFindPrograms(t *testing.T) {
	program := map[string]any{
		"programName":           "Software Engineering",
		"universityName":        "University of Waterloo",
		"justification":         "Co-op focus",
		"admissionRequirements": "Calculus, Physics",
		"careerPaths":           "Developer",
	}
	gen := &fakeGenerator{out: map[string]any{
		"reach":  []any{program},
		"target": []any{},
		"safety": []any{},
	}}
	rs, _ := newRecommender(t, gen)
	got, err := rs.FindPrograms(context.Background(), types.FindProgramsRequest{
		Grades: "93", Interests: "Computers", CareerAspirations: "Engineer", Extracurriculars: "Robotics",
	})
	require.NoError(t, err)
	require.Len(t, got.Reach, 1)
	assert.Equal(t, "University of Waterloo", got.Reach[0].UniversityName)
	assert.Equal(t, "program_suggestions", gen.calls[0].SchemaName)
}
