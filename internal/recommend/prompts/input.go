package prompts

import "github.com/Dee1911/Aspire.can/internal/catalog"

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Academic profile
	Grade             string
	Grades            string
	Interests         string
	CareerAspirations string
	Extracurriculars  string
	Awards            string
	Goals             string
	Universities      string

	// Admission estimate
	EssayQuality     string
	TargetUniversity string
	TargetProgram    string

	// Essay feedback
	EssayDraft          string
	EssayPrompt         string
	StoryBuilderContext string

	// Scholarship matching; Scholarships is the grounding catalog
	UserProfile  string
	Scholarships []catalog.Scholarship

	// Extracurricular impact
	ActivityName        string
	ActivityDescription string

	// Feature guide
	UserNeed string
}
