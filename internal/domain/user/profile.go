package user

// UserProfile is the document at users/{uid}. Fields are free text entered
// during onboarding.
type UserProfile struct {
	Grade              string `json:"grade,omitempty"`
	Average            string `json:"average,omitempty"`
	Courses            string `json:"courses,omitempty"`
	DreamPrograms      string `json:"dreamPrograms,omitempty"`
	OnboardingComplete bool   `json:"onboardingComplete"`
}

// ProfilePatch carries only the fields a caller wants to change.
type ProfilePatch struct {
	Grade              *string `json:"grade,omitempty" validate:"omitempty,max=64"`
	Average            *string `json:"average,omitempty" validate:"omitempty,max=64"`
	Courses            *string `json:"courses,omitempty" validate:"omitempty,max=4000"`
	DreamPrograms      *string `json:"dreamPrograms,omitempty" validate:"omitempty,max=4000"`
	OnboardingComplete *bool   `json:"onboardingComplete,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p.Grade == nil && p.Average == nil && p.Courses == nil && p.DreamPrograms == nil && p.OnboardingComplete == nil
}
