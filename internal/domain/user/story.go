package user

// StoryBuilderData is the narrative document at users/{uid}/storyBuilder/data.
// Ecs is never nil once read through the store.
type StoryBuilderData struct {
	PersonalStory string                 `json:"personalStory"`
	Achievements  string                 `json:"achievements"`
	Grades        string                 `json:"grades"`
	Struggles     string                 `json:"struggles"`
	Skills        string                 `json:"skills"`
	Ecs           []ExtracurricularStory `json:"ecs"`
}

type ExtracurricularStory struct {
	ID     string `json:"id" validate:"required,max=128"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Impact string `json:"impact,omitempty"`
	Skills string `json:"skills,omitempty"`
	Story  string `json:"story,omitempty"`
}

type StoryPatch struct {
	PersonalStory *string                 `json:"personalStory,omitempty"`
	Achievements  *string                 `json:"achievements,omitempty"`
	Grades        *string                 `json:"grades,omitempty"`
	Struggles     *string                 `json:"struggles,omitempty"`
	Skills        *string                 `json:"skills,omitempty"`
	Ecs           *[]ExtracurricularStory `json:"ecs,omitempty" validate:"omitempty,unique=ID,dive"`
}
