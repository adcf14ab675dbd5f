// Package domain re-exports the document models so callers can import one
// package.
package domain

import (
	"github.com/Dee1911/Aspire.can/internal/domain/tracker"
	"github.com/Dee1911/Aspire.can/internal/domain/user"
)

type UserProfile = user.UserProfile
type ProfilePatch = user.ProfilePatch
type StoryBuilderData = user.StoryBuilderData
type StoryPatch = user.StoryPatch
type ExtracurricularStory = user.ExtracurricularStory

type Deadline = tracker.Deadline
type DeadlineType = tracker.DeadlineType
type Application = tracker.Application
type NewApplication = tracker.NewApplication
type ApplicationPatch = tracker.ApplicationPatch
type Task = tracker.Task
type TaskPatch = tracker.TaskPatch
type Category = tracker.Category
type Tier = tracker.Tier
type Progress = tracker.Progress

const (
	DeadlineProgram     = tracker.DeadlineProgram
	DeadlineScholarship = tracker.DeadlineScholarship
	DeadlineTask        = tracker.DeadlineTask

	CategoryApplication      = tracker.CategoryApplication
	CategoryStandardizedTest = tracker.CategoryStandardizedTest
	CategoryPersonal         = tracker.CategoryPersonal

	TierReach  = tracker.TierReach
	TierTarget = tracker.TierTarget
	TierSafety = tracker.TierSafety

	ProgressNotStarted = tracker.ProgressNotStarted
	ProgressInProgress = tracker.ProgressInProgress
	ProgressApplied    = tracker.ProgressApplied
	ProgressCompleted  = tracker.ProgressCompleted
)

var DefaultChecklist = tracker.DefaultChecklist
