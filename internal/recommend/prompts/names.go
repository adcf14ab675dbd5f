package prompts

type PromptName string

const (
	// Program research
	PromptFindPrograms             PromptName = "find_programs"
	PromptCalculateAdmissionChance PromptName = "calculate_admission_chance"

	// Writing
	PromptAnalyzeEssay    PromptName = "analyze_essay"
	PromptSuggestECImpact PromptName = "suggest_ec_impact"

	// Planning
	PromptGenerateTimeline PromptName = "generate_timeline"
	PromptFindScholarships PromptName = "find_scholarships"

	// Guide
	PromptRecommendFeatures PromptName = "recommend_features"
)

// All lists every registered prompt in a stable order.
var All = []PromptName{
	PromptFindPrograms,
	PromptCalculateAdmissionChance,
	PromptAnalyzeEssay,
	PromptSuggestECImpact,
	PromptGenerateTimeline,
	PromptFindScholarships,
	PromptRecommendFeatures,
}
