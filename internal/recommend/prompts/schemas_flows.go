package prompts

// ---------- program finder ----------

func ProgramSuggestionSchema() map[string]any {
	return Object(map[string]any{
		"programName":           StringSchema(),
		"universityName":        StringSchema(),
		"justification":         StringSchema(),
		"admissionRequirements": StringSchema(),
		"careerPaths":           StringSchema(),
	})
}

func FindProgramsSchema() map[string]any {
	return Object(map[string]any{
		"reach":  ArrayOf(ProgramSuggestionSchema()),
		"target": ArrayOf(ProgramSuggestionSchema()),
		"safety": ArrayOf(ProgramSuggestionSchema()),
	})
}

// ---------- admission chance ----------

func AdmissionChanceSchema() map[string]any {
	return Object(map[string]any{
		"admissionChancePercentage": BoundedNumberSchema(0, 100),
		"analysis":                  StringSchema(),
	})
}

// ---------- essay feedback ----------

func EssayFeedbackSchema() map[string]any {
	return Object(map[string]any{
		"strengths":   StringSchema(),
		"weaknesses":  StringSchema(),
		"suggestions": StringSchema(),
	})
}

// ---------- timeline ----------

func MilestoneSchema() map[string]any {
	return Object(map[string]any{
		"date": StringSchema(),
		"task": StringSchema(),
	})
}

func TimelineSchema() map[string]any {
	return Object(map[string]any{
		"milestones": ArrayOf(MilestoneSchema()),
	})
}

// ---------- scholarships ----------

func ScholarshipMatchSchema() map[string]any {
	return Object(map[string]any{
		"name":          StringSchema(),
		"amount":        NumberSchema(),
		"eligibility":   StringSchema(),
		"deadline":      StringSchema(),
		"website":       StringSchema(),
		"justification": StringSchema(),
	})
}

func ScholarshipMatchesSchema() map[string]any {
	return Object(map[string]any{
		"topMatches": ArrayOf(ScholarshipMatchSchema()),
	})
}

// ---------- extracurricular impact ----------

func ECImpactSchema() map[string]any {
	suggestions := StringArraySchema()
	suggestions["minItems"] = 3
	suggestions["maxItems"] = 3
	return Object(map[string]any{
		"suggestions": suggestions,
	})
}

// ---------- feature guide ----------

func RecommendedFeatureSchema() map[string]any {
	return Object(map[string]any{
		"featureName":   EnumSchema(FeatureNames...),
		"justification": StringSchema(),
	})
}

func FeatureRecommendationSchema() map[string]any {
	features := ArrayOf(RecommendedFeatureSchema())
	features["minItems"] = 1
	features["maxItems"] = 3
	return Object(map[string]any{
		"recommendedFeatures":  features,
		"overallJustification": StringSchema(),
	})
}
