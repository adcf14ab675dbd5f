package tracker

type DeadlineType string

const (
	DeadlineProgram     DeadlineType = "Program"
	DeadlineScholarship DeadlineType = "Scholarship"
	DeadlineTask        DeadlineType = "Task"
)

// Deadline is one calendar entry under users/{uid}/deadlines. SourceID is a
// weak back-reference to the Application that produced it.
type Deadline struct {
	ID       string       `json:"id,omitempty"`
	Date     string       `json:"date" validate:"required,isodate"`
	Name     string       `json:"name" validate:"notblank,max=256"`
	Type     DeadlineType `json:"type" validate:"required,oneof=Program Scholarship Task"`
	SourceID string       `json:"sourceId,omitempty" validate:"omitempty,max=128"`
}
