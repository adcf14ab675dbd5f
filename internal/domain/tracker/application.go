package tracker

type Category string

const (
	CategoryApplication      Category = "Application"
	CategoryStandardizedTest Category = "Standardized Test"
	CategoryPersonal         Category = "Personal"
)

type Tier string

const (
	TierReach  Tier = "Reach"
	TierTarget Tier = "Target"
	TierSafety Tier = "Safety"
)

// Progress is unconstrained: any value may follow any other.
type Progress string

const (
	ProgressNotStarted Progress = "Not Started"
	ProgressInProgress Progress = "In Progress"
	ProgressApplied    Progress = "Applied"
	ProgressCompleted  Progress = "Completed"
)

// DefaultChecklist seeds new applications that arrive without tasks.
var DefaultChecklist = []string{
	"Complete Supplementary Application",
	"Request Reference Letters",
	"Submit Portfolio",
	"Pay Application Fee",
}

// Application is a tracked item. Tasks and Notes live in sub-resources and
// are only populated by detail reads, which always set both (an empty list
// and "" when there is nothing stored). Summary reads leave Tasks null.
type Application struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Deadline string   `json:"deadline"`
	Category Category `json:"category,omitempty"`
	Type     Tier     `json:"type,omitempty"`
	Progress Progress `json:"progress,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	Tasks    []Task   `json:"tasks"`
}

type Task struct {
	ID        string `json:"id" validate:"max=128"`
	Name      string `json:"name" validate:"notblank,max=512"`
	Completed bool   `json:"completed"`
}

// NewApplication is the payload for creating an application. A nil Tasks
// slice asks for the default checklist when seeding is enabled.
type NewApplication struct {
	Name     string   `json:"name" validate:"notblank,max=256"`
	Deadline string   `json:"deadline" validate:"required,isodate"`
	Category Category `json:"category" validate:"omitempty,oneof=Application 'Standardized Test' Personal"`
	Type     Tier     `json:"type" validate:"omitempty,oneof=Reach Target Safety"`
	Progress Progress `json:"progress" validate:"omitempty,oneof='Not Started' 'In Progress' Applied Completed"`
	Notes    string   `json:"notes" validate:"max=20000"`
	Tasks    []Task   `json:"tasks" validate:"omitempty,dive"`
}

// ApplicationPatch is a partial update. Tasks, when present, replaces the
// whole task list.
type ApplicationPatch struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,notblank,max=256"`
	Deadline *string   `json:"deadline,omitempty" validate:"omitempty,isodate"`
	Category *Category `json:"category,omitempty" validate:"omitempty,oneof=Application 'Standardized Test' Personal"`
	Type     *Tier     `json:"type,omitempty" validate:"omitempty,oneof=Reach Target Safety"`
	Progress *Progress `json:"progress,omitempty" validate:"omitempty,oneof='Not Started' 'In Progress' Applied Completed"`
	Notes    *string   `json:"notes,omitempty" validate:"omitempty,max=20000"`
	Tasks    *[]Task   `json:"tasks,omitempty" validate:"omitempty,dive"`
}

func (p ApplicationPatch) HasCoreFields() bool {
	return p.Name != nil || p.Deadline != nil || p.Category != nil || p.Type != nil || p.Progress != nil
}

type TaskPatch struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,notblank,max=512"`
	Completed *bool   `json:"completed,omitempty"`
}
