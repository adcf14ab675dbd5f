package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Dee1911/Aspire.can/internal/data/repos"
	"github.com/Dee1911/Aspire.can/internal/data/repos/tracker"
	types "github.com/Dee1911/Aspire.can/internal/domain/tracker"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

const DefaultUpcomingLimit = 3

// UpdateError carries the authoritative application read back after a
// failed update so callers can resynchronise.
type UpdateError struct {
	Current *types.Application
	Err     error
}

func (e *UpdateError) Error() string { return e.Err.Error() }
func (e *UpdateError) Unwrap() error { return e.Err }

type TrackerService interface {
	GetDeadlines(ctx context.Context, uid string) ([]types.Deadline, error)
	AddDeadline(ctx context.Context, uid string, d types.Deadline) (*types.Deadline, error)
	DeleteDeadline(ctx context.Context, uid, id string) error
	DeleteDeadlinesBySource(ctx context.Context, uid, sourceID string) (int, error)

	GetApplications(ctx context.Context, uid string, detail bool) ([]types.Application, error)
	GetApplication(ctx context.Context, uid, appID string) (*types.Application, error)
	// AddApplication creates the application and a linked Task deadline.
	AddApplication(ctx context.Context, uid string, in types.NewApplication) (*types.Application, error)
	// UpdateApplication returns the stored application. On failure the error
	// is an *UpdateError when the current state could be re-read.
	UpdateApplication(ctx context.Context, uid, appID string, patch types.ApplicationPatch) (*types.Application, error)
	// DeleteApplication removes the application, its tasks and notes, then
	// every deadline sourced from it.
	DeleteApplication(ctx context.Context, uid, appID string) error

	AddTask(ctx context.Context, uid, appID string, task types.Task) (*types.Task, error)
	UpdateTask(ctx context.Context, uid, appID, taskID string, patch types.TaskPatch) error
	DeleteTask(ctx context.Context, uid, appID, taskID string) error

	UpcomingDeadlines(ctx context.Context, uid string, now time.Time, limit int) ([]types.Application, error)
}

type trackerService struct {
	log          *logger.Logger
	deadlineRepo repos.DeadlineRepo
	appRepo      repos.ApplicationRepo
}

func NewTrackerService(log *logger.Logger, deadlineRepo repos.DeadlineRepo, appRepo repos.ApplicationRepo) TrackerService {
	return &trackerService{
		log:          log.With("service", "TrackerService"),
		deadlineRepo: deadlineRepo,
		appRepo:      appRepo,
	}
}

func (ts *trackerService) GetDeadlines(ctx context.Context, uid string) ([]types.Deadline, error) {
	out, err := ts.deadlineRepo.GetDeadlines(ctx, uid)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (ts *trackerService) AddDeadline(ctx context.Context, uid string, d types.Deadline) (*types.Deadline, error) {
	d.ID = ""
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	id, err := ts.deadlineRepo.AddDeadline(ctx, uid, d)
	if err != nil {
		return nil, err
	}
	d.ID = id
	return &d, nil
}

func (ts *trackerService) DeleteDeadline(ctx context.Context, uid, id string) error {
	_, err := ts.deadlineRepo.DeleteDeadline(ctx, uid, id, false)
	return err
}

func (ts *trackerService) DeleteDeadlinesBySource(ctx context.Context, uid, sourceID string) (int, error) {
	return ts.deadlineRepo.DeleteDeadline(ctx, uid, sourceID, true)
}

func (ts *trackerService) GetApplications(ctx context.Context, uid string, detail bool) ([]types.Application, error) {
	if detail {
		return ts.appRepo.GetApplicationsWithDetails(ctx, uid)
	}
	return ts.appRepo.GetApplications(ctx, uid)
}

func (ts *trackerService) GetApplication(ctx context.Context, uid, appID string) (*types.Application, error) {
	app, err := ts.appRepo.GetApplication(ctx, uid, appID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application %s: %w", appID, ErrNotFound)
	}
	return app, nil
}

func (ts *trackerService) AddApplication(ctx context.Context, uid string, in types.NewApplication) (*types.Application, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	appID, err := ts.appRepo.AddApplication(ctx, uid, in)
	if err != nil {
		return nil, err
	}
	link := types.Deadline{
		Name:     in.Name,
		Date:     in.Deadline,
		Type:     types.DeadlineTask,
		SourceID: appID,
	}
	if _, err := ts.deadlineRepo.AddDeadline(ctx, uid, link); err != nil {
		ts.log.Warn("Linked deadline not created", "user_id", uid, "application_id", appID, "error", err)
		return nil, fmt.Errorf("add linked deadline: %w", err)
	}
	return ts.GetApplication(ctx, uid, appID)
}

func (ts *trackerService) UpdateApplication(ctx context.Context, uid, appID string, patch types.ApplicationPatch) (*types.Application, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	if err := ts.appRepo.UpdateApplication(ctx, uid, appID, patch); err != nil {
		current, readErr := ts.appRepo.GetApplication(ctx, uid, appID)
		if readErr != nil || current == nil {
			return nil, err
		}
		ts.log.Info("Update failed; returning current state", "user_id", uid, "application_id", appID, "error", err)
		return nil, &UpdateError{Current: current, Err: err}
	}
	return ts.GetApplication(ctx, uid, appID)
}

func (ts *trackerService) DeleteApplication(ctx context.Context, uid, appID string) error {
	if err := ts.appRepo.DeleteApplication(ctx, uid, appID); err != nil {
		return err
	}
	n, err := ts.deadlineRepo.DeleteDeadline(ctx, uid, appID, true)
	if err != nil {
		return fmt.Errorf("delete linked deadlines: %w", err)
	}
	ts.log.Debug("Deleted application", "user_id", uid, "application_id", appID, "deadlines", n)
	return nil
}

func (ts *trackerService) AddTask(ctx context.Context, uid, appID string, task types.Task) (*types.Task, error) {
	if err := validate.Struct(task); err != nil {
		return nil, err
	}
	id, err := ts.appRepo.AddTaskToApplication(ctx, uid, appID, task)
	if err != nil {
		return nil, err
	}
	task.ID = id
	return &task, nil
}

func (ts *trackerService) UpdateTask(ctx context.Context, uid, appID, taskID string, patch types.TaskPatch) error {
	if err := validate.Struct(patch); err != nil {
		return err
	}
	return ts.appRepo.UpdateApplicationTask(ctx, uid, appID, taskID, patch)
}

func (ts *trackerService) DeleteTask(ctx context.Context, uid, appID, taskID string) error {
	return ts.appRepo.DeleteApplicationTask(ctx, uid, appID, taskID)
}

// UpcomingDeadlines lists applications due on or after now's calendar date,
// soonest first. limit <= 0 uses DefaultUpcomingLimit.
func (ts *trackerService) UpcomingDeadlines(ctx context.Context, uid string, now time.Time, limit int) ([]types.Application, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	apps, err := ts.appRepo.GetApplications(ctx, uid)
	if err != nil {
		return nil, err
	}
	today := now.Format(validate.ISODateLayout)
	out := make([]types.Application, 0, limit)
	for _, a := range apps {
		if !validate.IsISODate(a.Deadline) || a.Deadline < today {
			continue
		}
		out = append(out, a)
	}
	tracker.SortByDeadline(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AsUpdateError extracts the resynchronisation payload of a failed update.
func AsUpdateError(err error) (*UpdateError, bool) {
	var ue *UpdateError
	if errors.As(err, &ue) && ue != nil {
		return ue, true
	}
	return nil, false
}
