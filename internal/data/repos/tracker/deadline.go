package tracker

import (
	"context"
	"fmt"

	"github.com/Dee1911/Aspire.can/internal/data/docpath"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type DeadlineRepo interface {
	// GetDeadlines returns the user's deadlines in no particular order.
	GetDeadlines(ctx context.Context, uid string) ([]types.Deadline, error)
	AddDeadline(ctx context.Context, uid string, d types.Deadline) (string, error)
	// DeleteDeadline removes the deadline with document id id, or, when
	// bySourceID is set, every deadline whose sourceId equals id in one batch.
	DeleteDeadline(ctx context.Context, uid, id string, bySourceID bool) (int, error)
}

type deadlineRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewDeadlineRepo(store docstore.Store, baseLog *logger.Logger) DeadlineRepo {
	return &deadlineRepo{store: store, log: baseLog.With("repo", "DeadlineRepo")}
}

func (r *deadlineRepo) GetDeadlines(ctx context.Context, uid string) ([]types.Deadline, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return nil, err
	}
	docs, err := r.store.List(ctx, docpath.Deadlines(uid))
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	out := make([]types.Deadline, 0, len(docs))
	for _, d := range docs {
		var dl types.Deadline
		if err := docstore.Decode(d.Data, &dl); err != nil {
			return nil, err
		}
		dl.ID = d.ID
		out = append(out, dl)
	}
	return out, nil
}

func (r *deadlineRepo) AddDeadline(ctx context.Context, uid string, d types.Deadline) (string, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return "", err
	}
	d.ID = ""
	data, err := docstore.Encode(d)
	if err != nil {
		return "", err
	}
	id, err := r.store.Create(ctx, docpath.Deadlines(uid), data)
	if err != nil {
		return "", fmt.Errorf("add deadline: %w", err)
	}
	return id, nil
}

func (r *deadlineRepo) DeleteDeadline(ctx context.Context, uid, id string, bySourceID bool) (int, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return 0, err
	}
	field := "deadlineId"
	if bySourceID {
		field = "sourceId"
	}
	if err := docpath.Segment(field, id); err != nil {
		return 0, err
	}
	if !bySourceID {
		if err := r.store.Delete(ctx, docpath.Deadline(uid, id)); err != nil {
			return 0, fmt.Errorf("delete deadline: %w", err)
		}
		return 1, nil
	}

	docs, err := r.store.List(ctx, docpath.Deadlines(uid), docstore.Eq("sourceId", id))
	if err != nil {
		return 0, fmt.Errorf("find deadlines by source: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	b := r.store.Batch()
	for _, d := range docs {
		b.Delete(d.Path)
	}
	if err := b.Commit(ctx); err != nil {
		return 0, fmt.Errorf("delete deadlines by source: %w", err)
	}
	r.log.Debug("Deleted deadlines by source", "user_id", uid, "source_id", id, "count", len(docs))
	return len(docs), nil
}
