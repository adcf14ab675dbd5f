// Package recommend holds the request and result shapes of the
// recommendation flows.
package recommend

type FindProgramsRequest struct {
	Grades            string `json:"grades"`
	Interests         string `json:"interests"`
	CareerAspirations string `json:"careerAspirations"`
	Extracurriculars  string `json:"extracurriculars"`
}

type ProgramSuggestion struct {
	ProgramName           string `json:"programName"`
	UniversityName        string `json:"universityName"`
	Justification         string `json:"justification"`
	AdmissionRequirements string `json:"admissionRequirements"`
	CareerPaths           string `json:"careerPaths"`
}

type ProgramMatches struct {
	Reach  []ProgramSuggestion `json:"reach"`
	Target []ProgramSuggestion `json:"target"`
	Safety []ProgramSuggestion `json:"safety"`
}

type AdmissionChanceRequest struct {
	Grades           string `json:"grades"`
	Extracurriculars string `json:"extracurriculars"`
	Awards           string `json:"awards"`
	EssayQuality     string `json:"essayQuality"`
	TargetUniversity string `json:"targetUniversity"`
	TargetProgram    string `json:"targetProgram"`
}

type AdmissionChance struct {
	AdmissionChancePercentage float64 `json:"admissionChancePercentage"`
	Analysis                  string  `json:"analysis"`
}

type EssayFeedbackRequest struct {
	EssayDraft          string `json:"essayDraft"`
	EssayPrompt         string `json:"essayPrompt,omitempty"`
	StoryBuilderContext string `json:"storyBuilderContext,omitempty"`
}

type EssayFeedback struct {
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Suggestions string `json:"suggestions"`
}

type TimelineRequest struct {
	Grade        string `json:"grade"`
	Goals        string `json:"goals"`
	Universities string `json:"universities"`
}

type Milestone struct {
	Date string `json:"date"`
	Task string `json:"task"`
}

type Timeline struct {
	Milestones []Milestone `json:"milestones"`
}

// ScholarshipRequest matches against the catalog. A blank UserProfile falls
// back to the caller's composed narrative.
type ScholarshipRequest struct {
	UserProfile string `json:"userProfile,omitempty"`
}

type ScholarshipMatch struct {
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	Eligibility   string  `json:"eligibility"`
	Deadline      string  `json:"deadline"`
	Website       string  `json:"website"`
	Justification string  `json:"justification"`
}

type ScholarshipMatches struct {
	TopMatches []ScholarshipMatch `json:"topMatches"`
}

type ECImpactRequest struct {
	ActivityName        string `json:"activityName"`
	ActivityDescription string `json:"activityDescription"`
}

type ECImpact struct {
	Suggestions []string `json:"suggestions"`
}

type FeatureRequest struct {
	UserNeed string `json:"userNeed"`
}

type RecommendedFeature struct {
	FeatureName   string `json:"featureName"`
	Justification string `json:"justification"`
}

type FeatureRecommendation struct {
	RecommendedFeatures  []RecommendedFeature `json:"recommendedFeatures"`
	OverallJustification string               `json:"overallJustification"`
}
