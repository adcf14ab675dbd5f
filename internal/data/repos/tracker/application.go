package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dee1911/Aspire.can/internal/data/docpath"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

type ApplicationRepo interface {
	// GetApplications returns core documents only, sorted by deadline.
	GetApplications(ctx context.Context, uid string) ([]types.Application, error)
	// GetApplicationsWithDetails joins tasks and notes for every application
	// using two collection-group reads instead of one read per application.
	GetApplicationsWithDetails(ctx context.Context, uid string) ([]types.Application, error)
	// GetApplication returns nil, nil when the application does not exist.
	GetApplication(ctx context.Context, uid, appID string) (*types.Application, error)
	AddApplication(ctx context.Context, uid string, in types.NewApplication) (string, error)
	UpdateApplication(ctx context.Context, uid, appID string, patch types.ApplicationPatch) error
	// DeleteApplication removes the application with its tasks and notes.
	DeleteApplication(ctx context.Context, uid, appID string) error

	AddTaskToApplication(ctx context.Context, uid, appID string, task types.Task) (string, error)
	UpdateApplicationTask(ctx context.Context, uid, appID, taskID string, patch types.TaskPatch) error
	DeleteApplicationTask(ctx context.Context, uid, appID, taskID string) error
}

type ApplicationRepoOptions struct {
	// SeedDefaultChecklist gives applications created without a task list
	// the default checklist.
	SeedDefaultChecklist bool
}

type applicationRepo struct {
	store docstore.Store
	log   *logger.Logger
	opts  ApplicationRepoOptions
}

func NewApplicationRepo(store docstore.Store, baseLog *logger.Logger, opts ApplicationRepoOptions) ApplicationRepo {
	return &applicationRepo{store: store, log: baseLog.With("repo", "ApplicationRepo"), opts: opts}
}

// applicationDoc is the stored core document; tasks and notes live below it.
type applicationDoc struct {
	Name     string         `json:"name"`
	Deadline string         `json:"deadline"`
	Category types.Category `json:"category,omitempty"`
	Type     types.Tier     `json:"type,omitempty"`
	Progress types.Progress `json:"progress,omitempty"`
}

// taskDoc keeps list order in Position.
type taskDoc struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

type notesDoc struct {
	Text string `json:"text"`
}

func checkIDs(uid, appID string) error {
	if err := docpath.Segment("userId", uid); err != nil {
		return err
	}
	return docpath.Segment("applicationId", appID)
}

func (r *applicationRepo) GetApplications(ctx context.Context, uid string) ([]types.Application, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return nil, err
	}
	docs, err := r.store.List(ctx, docpath.Applications(uid))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	out := make([]types.Application, 0, len(docs))
	for _, d := range docs {
		app, err := decodeApplication(d)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	SortByDeadline(out)
	return out, nil
}

func (r *applicationRepo) GetApplicationsWithDetails(ctx context.Context, uid string) ([]types.Application, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return nil, err
	}
	var (
		apps      []types.Application
		taskDocs  []docstore.Doc
		notesDocs []docstore.Doc
	)
	prefix := docpath.ApplicationsPrefix(uid)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apps, err = r.GetApplications(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		taskDocs, err = r.store.ListGroup(gctx, docpath.TasksCollection, prefix)
		return err
	})
	g.Go(func() error {
		var err error
		notesDocs, err = r.store.ListGroup(gctx, docpath.NotesCollection, prefix)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list application details: %w", err)
	}

	tasksByApp := map[string][]docstore.Doc{}
	for _, d := range taskDocs {
		appID := docpath.OwningApplication(d.Path)
		tasksByApp[appID] = append(tasksByApp[appID], d)
	}
	notesByApp := map[string]string{}
	for _, d := range notesDocs {
		if d.ID != docpath.NotesDocID {
			continue
		}
		var n notesDoc
		if err := docstore.Decode(d.Data, &n); err != nil {
			return nil, err
		}
		notesByApp[docpath.OwningApplication(d.Path)] = n.Text
	}
	for i := range apps {
		tasks, err := decodeTasks(tasksByApp[apps[i].ID])
		if err != nil {
			return nil, err
		}
		notes := notesByApp[apps[i].ID]
		apps[i].Tasks = tasks
		apps[i].Notes = &notes
	}
	return apps, nil
}

func (r *applicationRepo) GetApplication(ctx context.Context, uid, appID string) (*types.Application, error) {
	if err := checkIDs(uid, appID); err != nil {
		return nil, err
	}
	var (
		core     *docstore.Doc
		tasks    []docstore.Doc
		notes    string
		notFound bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := r.store.Get(gctx, docpath.Application(uid, appID))
		if errors.Is(err, docstore.ErrNotFound) {
			notFound = true
			return nil
		}
		core = d
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = r.store.List(gctx, docpath.Tasks(uid, appID))
		return err
	})
	g.Go(func() error {
		d, err := r.store.Get(gctx, docpath.NotesDoc(uid, appID))
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var n notesDoc
		if err := docstore.Decode(d.Data, &n); err != nil {
			return err
		}
		notes = n.Text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if notFound {
		return nil, nil
	}
	app, err := decodeApplication(*core)
	if err != nil {
		return nil, err
	}
	if app.Tasks, err = decodeTasks(tasks); err != nil {
		return nil, err
	}
	app.Notes = &notes
	return &app, nil
}

func (r *applicationRepo) AddApplication(ctx context.Context, uid string, in types.NewApplication) (string, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return "", err
	}
	core := applicationDoc{
		Name:     in.Name,
		Deadline: in.Deadline,
		Category: in.Category,
		Type:     in.Type,
		Progress: in.Progress,
	}
	if core.Category == "" {
		core.Category = types.CategoryApplication
	}
	if core.Progress == "" {
		core.Progress = types.ProgressNotStarted
	}
	tasks := in.Tasks
	if tasks == nil && r.opts.SeedDefaultChecklist {
		tasks = make([]types.Task, 0, len(types.DefaultChecklist))
		for _, name := range types.DefaultChecklist {
			tasks = append(tasks, types.Task{Name: name})
		}
	}
	tasks, err := assignTaskIDs(tasks)
	if err != nil {
		return "", err
	}

	appID := docstore.NewID()
	coreData, err := docstore.Encode(core)
	if err != nil {
		return "", err
	}
	b := r.store.Batch()
	b.Set(docpath.Application(uid, appID), coreData)
	if err := setTasks(b, uid, appID, tasks); err != nil {
		return "", err
	}
	b.Set(docpath.NotesDoc(uid, appID), map[string]any{"text": in.Notes})
	if err := b.Commit(ctx); err != nil {
		return "", fmt.Errorf("add application: %w", err)
	}
	r.log.Debug("Added application", "user_id", uid, "application_id", appID, "tasks", len(tasks))
	return appID, nil
}

func (r *applicationRepo) UpdateApplication(ctx context.Context, uid, appID string, patch types.ApplicationPatch) error {
	if err := checkIDs(uid, appID); err != nil {
		return err
	}
	b := r.store.Batch()
	corePath := docpath.Application(uid, appID)
	if patch.HasCoreFields() {
		fields, err := docstore.Encode(types.ApplicationPatch{
			Name:     patch.Name,
			Deadline: patch.Deadline,
			Category: patch.Category,
			Type:     patch.Type,
			Progress: patch.Progress,
		})
		if err != nil {
			return err
		}
		// Update fails the whole batch when the application is gone.
		b.Update(corePath, fields)
	} else if _, err := r.store.Get(ctx, corePath); err != nil {
		return fmt.Errorf("update application: %w", err)
	}

	if patch.Tasks != nil {
		tasks, err := assignTaskIDs(*patch.Tasks)
		if err != nil {
			return err
		}
		existing, err := r.store.List(ctx, docpath.Tasks(uid, appID))
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		keep := make(map[string]bool, len(tasks))
		for _, t := range tasks {
			keep[t.ID] = true
		}
		for _, d := range existing {
			if !keep[d.ID] {
				b.Delete(d.Path)
			}
		}
		if err := setTasks(b, uid, appID, tasks); err != nil {
			return err
		}
	}
	if patch.Notes != nil {
		b.Set(docpath.NotesDoc(uid, appID), map[string]any{"text": *patch.Notes}, docstore.Merge())
	}
	if b.Len() == 0 {
		return nil
	}
	if err := b.Commit(ctx); err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

func (r *applicationRepo) DeleteApplication(ctx context.Context, uid, appID string) error {
	if err := checkIDs(uid, appID); err != nil {
		return err
	}
	var tasks, notes []docstore.Doc
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = r.store.List(gctx, docpath.Tasks(uid, appID))
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = r.store.List(gctx, docpath.Notes(uid, appID))
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("enumerate application children: %w", err)
	}
	b := r.store.Batch()
	for _, d := range tasks {
		b.Delete(d.Path)
	}
	for _, d := range notes {
		b.Delete(d.Path)
	}
	b.Delete(docpath.Application(uid, appID))
	if err := b.Commit(ctx); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	r.log.Debug("Deleted application", "user_id", uid, "application_id", appID, "tasks", len(tasks))
	return nil
}

func (r *applicationRepo) AddTaskToApplication(ctx context.Context, uid, appID string, task types.Task) (string, error) {
	if err := checkIDs(uid, appID); err != nil {
		return "", err
	}
	if _, err := r.store.Get(ctx, docpath.Application(uid, appID)); err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	existing, err := r.store.List(ctx, docpath.Tasks(uid, appID))
	if err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	if task.ID == "" {
		task.ID = docstore.NewID()
	} else if err := docpath.Segment("taskId", task.ID); err != nil {
		return "", err
	}
	next := 0
	for _, d := range existing {
		if d.ID == task.ID {
			return "", fmt.Errorf("%w: task %s", docstore.ErrConflict, task.ID)
		}
		var td taskDoc
		if err := docstore.Decode(d.Data, &td); err == nil && td.Position >= next {
			next = td.Position + 1
		}
	}
	data, err := docstore.Encode(taskDoc{Name: task.Name, Completed: task.Completed, Position: next})
	if err != nil {
		return "", err
	}
	if err := r.store.Set(ctx, docpath.Task(uid, appID, task.ID), data); err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	return task.ID, nil
}

func (r *applicationRepo) UpdateApplicationTask(ctx context.Context, uid, appID, taskID string, patch types.TaskPatch) error {
	if err := checkIDs(uid, appID); err != nil {
		return err
	}
	if err := docpath.Segment("taskId", taskID); err != nil {
		return err
	}
	fields, err := docstore.Encode(patch)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.store.Update(ctx, docpath.Task(uid, appID, taskID), fields); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *applicationRepo) DeleteApplicationTask(ctx context.Context, uid, appID, taskID string) error {
	if err := checkIDs(uid, appID); err != nil {
		return err
	}
	if err := docpath.Segment("taskId", taskID); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, docpath.Task(uid, appID, taskID)); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func setTasks(b docstore.Batch, uid, appID string, tasks []types.Task) error {
	for i, t := range tasks {
		data, err := docstore.Encode(taskDoc{Name: t.Name, Completed: t.Completed, Position: i})
		if err != nil {
			return err
		}
		b.Set(docpath.Task(uid, appID, t.ID), data)
	}
	return nil
}

// assignTaskIDs fills empty ids and rejects duplicates.
func assignTaskIDs(tasks []types.Task) ([]types.Task, error) {
	out := make([]types.Task, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			t.ID = docstore.NewID()
		} else if err := docpath.Segment(fmt.Sprintf("tasks[%d].id", i), t.ID); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, validate.Field(fmt.Sprintf("tasks[%d].id", i), "task ids must be unique")
		}
		seen[t.ID] = true
		out[i] = t
	}
	return out, nil
}

func decodeApplication(d docstore.Doc) (types.Application, error) {
	var core applicationDoc
	if err := docstore.Decode(d.Data, &core); err != nil {
		return types.Application{}, err
	}
	return types.Application{
		ID:       d.ID,
		Name:     core.Name,
		Deadline: core.Deadline,
		Category: core.Category,
		Type:     core.Type,
		Progress: core.Progress,
	}, nil
}

func decodeTasks(docs []docstore.Doc) ([]types.Task, error) {
	type positioned struct {
		task types.Task
		pos  int
	}
	rows := make([]positioned, 0, len(docs))
	for _, d := range docs {
		var td taskDoc
		if err := docstore.Decode(d.Data, &td); err != nil {
			return nil, err
		}
		rows = append(rows, positioned{task: types.Task{ID: d.ID, Name: td.Name, Completed: td.Completed}, pos: td.Position})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].pos != rows[j].pos {
			return rows[i].pos < rows[j].pos
		}
		return rows[i].task.ID < rows[j].task.ID
	})
	out := make([]types.Task, len(rows))
	for i, row := range rows {
		out[i] = row.task
	}
	return out, nil
}

// SortByDeadline orders applications by deadline ascending. Unparseable
// deadlines sort last; ties break on name.
func SortByDeadline(apps []types.Application) {
	key := func(a types.Application) (time.Time, bool) {
		t, err := time.Parse(validate.ISODateLayout, a.Deadline)
		return t, err == nil
	}
	sort.SliceStable(apps, func(i, j int) bool {
		ti, oki := key(apps[i])
		tj, okj := key(apps[j])
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case oki && okj && !ti.Equal(tj):
			return ti.Before(tj)
		}
		return apps[i].Name < apps[j].Name
	})
}
