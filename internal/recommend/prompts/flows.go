package prompts

// FeatureNames are the product features the guide prompt may recommend.
var FeatureNames = []string{
	"AI Program Finder",
	"AI Admission Calculator",
	"AI Timeline Generator",
	"Program Explorer",
	"AI Scholarship Matchmaker",
	"Extracurricular Explorer",
	"Deadline Calendar",
	"Story Builder",
	"AI Essay Tool",
	"Extracurricular Impact Suggester",
}

func init() { RegisterAll() }

// RegisterAll registers every recommendation prompt. It is safe to call more
// than once.
func RegisterAll() {
	RegisterSpec(Spec{
		Name:       PromptFindPrograms,
		Version:    1,
		SchemaName: "program_suggestions",
		Schema:     FindProgramsSchema,
		Required:   []string{"Grades", "Interests", "CareerAspirations", "Extracurriculars"},
		System: `
You are a university guidance counselor with detailed knowledge of undergraduate programs at Canadian universities in every province.
Recommend programs in three tiers: reach (ambitious), target (strong chance) and safety (admission very likely).`,
		User: `
Suggest two Canadian university programs for each tier based on this student.

Student:
- Grades: {{.Grades}}
- Interests: {{.Interests}}
- Career aspirations: {{.CareerAspirations}}
- Extracurriculars: {{.Extracurriculars}}

For every program give:
- justification: a paragraph tying the student's interests, implied skills and goals to the program's curriculum and strengths
- admissionRequirements: the competitive admission average (for example "High 80s to low 90s") and key prerequisite courses
- careerPaths: three to five careers graduates pursue

Draw from different universities and regions.`,
	})

	RegisterSpec(Spec{
		Name:       PromptCalculateAdmissionChance,
		Version:    1,
		SchemaName: "admission_chance",
		Schema:     AdmissionChanceSchema,
		Required:   []string{"Grades", "Extracurriculars", "Awards", "EssayQuality", "TargetUniversity", "TargetProgram"},
		System: `
You are a senior admissions officer for competitive Canadian university programs.
Give an honest, evidence-based assessment of an applicant's chance of admission.`,
		User: `
Applicant:
- Target university: {{.TargetUniversity}}
- Target program: {{.TargetProgram}}
- Grades/average: {{.Grades}}
- Extracurricular activities: {{.Extracurriculars}}
- Awards and honours: {{.Awards}}
- Self-assessed essay quality: {{.EssayQuality}}

1. admissionChancePercentage: a number from 0 to 100. Weigh program competitiveness; a high average alone does not guarantee admission to a program with a low acceptance rate.
2. analysis: explain the estimate, covering the application's strengths, its weaknesses and concrete steps that would improve it.`,
	})

	RegisterSpec(Spec{
		Name:       PromptAnalyzeEssay,
		Version:    1,
		SchemaName: "essay_feedback",
		Schema:     EssayFeedbackSchema,
		Required:   []string{"EssayDraft"},
		System: `
You review university application essays and give students specific, actionable feedback.`,
		User: `
{{if .EssayPrompt}}Essay prompt:
{{.EssayPrompt}}

{{end}}Story Builder context:
{{if .StoryBuilderContext}}{{.StoryBuilderContext}}{{else}}None provided.{{end}}

Essay draft:
{{.EssayDraft}}

Return the essay's strengths, its weaknesses and suggestions for improvement. Use the Story Builder context to point out experiences the draft could draw on.`,
	})

	RegisterSpec(Spec{
		Name:       PromptGenerateTimeline,
		Version:    1,
		SchemaName: "application_timeline",
		Schema:     TimelineSchema,
		Required:   []string{"Grade", "Goals", "Universities"},
		System: `
You plan university application timelines for high school students.
Timelines run month by month from September of the student's grade to May of their graduation year.`,
		User: `
Student:
- Current grade: {{.Grade}}
- Application goals: {{.Goals}}
- Target universities: {{.Universities}}

Produce 8 to 12 milestones. Each has a date (month and year) and a concrete task naming the schools, essays or scholarships involved; write "Outline supplementary essays for Toronto and Waterloo" rather than "Work on essays".
Cover standardized testing where relevant, reference letters, program research, personal statements and supplementary essays, early and regular submissions, financial aid and scholarships, and accepting offers.`,
	})

	RegisterSpec(Spec{
		Name:       PromptFindScholarships,
		Version:    1,
		SchemaName: "scholarship_matches",
		Schema:     ScholarshipMatchesSchema,
		Required:   []string{"UserProfile"},
		Validators: []Validator{requireScholarships},
		System: `
You advise Canadian students on scholarships and match them with awards they can realistically win.
Only recommend scholarships from the list supplied by the user message.`,
		User: `
Student profile:
{{.UserProfile}}

Pick the 5 to 7 best-fit scholarships from the list below. Copy name, amount, eligibility, deadline and website exactly, and write a justification linking specific parts of the profile to the scholarship's criteria.

Available scholarships:
---
{{range .Scholarships}}Name: {{.Name}}
Amount: {{.Amount}}
Eligibility: {{.Eligibility}}
Deadline: {{.Deadline}}
Website: {{.Website}}
---
{{end}}`,
	})

	RegisterSpec(Spec{
		Name:       PromptSuggestECImpact,
		Version:    1,
		SchemaName: "ec_impact",
		Schema:     ECImpactSchema,
		Required:   []string{"ActivityName", "ActivityDescription"},
		System: `
You help students describe extracurricular activities for the activities section of a university application.`,
		User: `
Activity: {{.ActivityName}}
Student's description: {{.ActivityDescription}}

Write exactly three distinct bullet points. Start each with a strong action verb, show leadership, initiative or collaboration, quantify results where the description allows, and keep each to one sentence.`,
	})

	RegisterSpec(Spec{
		Name:       PromptRecommendFeatures,
		Version:    1,
		SchemaName: "feature_recommendations",
		Schema:     FeatureRecommendationSchema,
		Required:   []string{"UserNeed"},
		System: `
You are the in-app guide for Aspire, a university application planner. Point users to the features that solve their problem.`,
		User: `
The user needs help with: "{{.UserNeed}}"

Features:
- AI Program Finder: recommends programs from grades, interests and goals.
- AI Admission Calculator: estimates the chance of admission to a program with strengths and weaknesses.
- AI Timeline Generator: builds a month-by-month application to-do list.
- Program Explorer: browse university programs.
- AI Scholarship Matchmaker: finds scholarships using the Story Builder profile.
- Extracurricular Explorer: discover extracurricular activities.
- Deadline Calendar: tracks application and scholarship deadlines.
- Story Builder: organizes personal stories, extracurriculars, achievements and skills.
- AI Essay Tool: gives feedback on essay drafts using Story Builder content.
- Extracurricular Impact Suggester: writes strong descriptions of activities.

Recommend the two or three most helpful features, each with a one-sentence justification, and add a short encouraging overall justification.`,
	})
}

func requireScholarships(in Input) error {
	if len(in.Scholarships) == 0 {
		return &InputError{Missing: []string{"scholarships"}}
	}
	return nil
}
