// Package firestore adapts Cloud Firestore to docstore.Store.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

var _ docstore.Store = (*Store)(nil)

type Config struct {
	ProjectID string
	// CredentialsFile is a service account JSON path. Empty uses
	// application default credentials (or FIRESTORE_EMULATOR_HOST).
	CredentialsFile string
	DatabaseID      string
}

type Store struct {
	client *firestore.Client
	log    *logger.Logger
}

func Open(ctx context.Context, cfg Config, baseLog *logger.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("missing FIRESTORE_PROJECT_ID")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	var (
		client *firestore.Client
		err    error
	)
	if cfg.DatabaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID, opts...)
	} else {
		client, err = firestore.NewClient(ctx, cfg.ProjectID, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	return &Store{client: client, log: baseLog.With("store", "FirestoreDocumentStore")}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Get(ctx context.Context, docPath string) (*docstore.Doc, error) {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return nil, err
	}
	snap, err := s.client.Doc(docPath).Get(ctx)
	if err != nil {
		return nil, translate(err, docPath)
	}
	return fromSnapshot(snap), nil
}

func (s *Store) List(ctx context.Context, collectionPath string, filters ...docstore.Filter) ([]docstore.Doc, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	q := s.client.Collection(collectionPath).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	return s.collect(q.Documents(ctx), collectionPath, nil)
}

// ListGroup runs a collection-group query bounded on document name to the
// document that owns pathPrefix, so only that subtree is read. The prefix
// check on the stream still drops siblings inside the bound (u10 under u1).
func (s *Store) ListGroup(ctx context.Context, collectionID, pathPrefix string) ([]docstore.Doc, error) {
	q := s.client.CollectionGroup(collectionID).Query
	if lo, hi, ok := groupBounds(pathPrefix); ok {
		q = q.OrderBy(firestore.DocumentID, firestore.Asc).
			StartAt(s.client.Doc(lo)).
			EndBefore(s.client.Doc(hi))
	}
	return s.collect(q.Documents(ctx), collectionID, func(d docstore.Doc) bool {
		return strings.HasPrefix(d.Path, pathPrefix)
	})
}

// groupBounds returns the document-name range covering every descendant of
// the deepest document at or above pathPrefix. Names compare segment by
// segment, so hi sorts after any collection id under that document.
func groupBounds(pathPrefix string) (lo, hi string, ok bool) {
	trimmed := strings.Trim(pathPrefix, "/")
	if trimmed == "" {
		return "", "", false
	}
	segs := strings.Split(trimmed, "/")
	segs = segs[:len(segs)-len(segs)%2]
	if len(segs) == 0 {
		return "", "", false
	}
	lo = docstore.Join(segs...)
	return lo, docstore.Join(lo, groupBoundMax, groupBoundMax), true
}

const groupBoundMax = "\uf8ff"

func (s *Store) collect(it *firestore.DocumentIterator, what string, keep func(docstore.Doc) bool) ([]docstore.Doc, error) {
	defer it.Stop()
	var out []docstore.Doc
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, translate(err, what)
		}
		d := fromSnapshot(snap)
		if keep == nil || keep(*d) {
			out = append(out, *d)
		}
	}
}

func (s *Store) Create(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return "", err
	}
	id := docstore.NewID()
	if _, err := s.client.Collection(collectionPath).Doc(id).Create(ctx, orEmpty(data)); err != nil {
		return "", translate(err, docstore.Join(collectionPath, id))
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, docPath string, data map[string]any, opts ...docstore.SetOption) error {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return err
	}
	_, err := s.client.Doc(docPath).Set(ctx, orEmpty(data), setOptions(opts)...)
	return translate(err, docPath)
}

func (s *Store) Update(ctx context.Context, docPath string, data map[string]any) error {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return err
	}
	_, err := s.client.Doc(docPath).Update(ctx, updates(data))
	return translate(err, docPath)
}

func (s *Store) Delete(ctx context.Context, docPath string) error {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return err
	}
	_, err := s.client.Doc(docPath).Delete(ctx)
	return translate(err, docPath)
}

func (s *Store) Batch() docstore.Batch { return &batch{store: s} }

type batch struct {
	docstore.BatchOps
	store *Store
}

func (b *batch) Set(p string, data map[string]any, opts ...docstore.SetOption) docstore.Batch {
	b.Add(docstore.OpSet, p, data, opts)
	return b
}

func (b *batch) Update(p string, data map[string]any) docstore.Batch {
	b.Add(docstore.OpUpdate, p, data, nil)
	return b
}

func (b *batch) Delete(p string) docstore.Batch {
	b.Add(docstore.OpDelete, p, nil, nil)
	return b
}

func (b *batch) Len() int { return len(b.Ops) }

func (b *batch) Commit(ctx context.Context) error {
	if b.Err != nil {
		return b.Err
	}
	if len(b.Ops) == 0 {
		return nil
	}
	c := b.store.client
	wb := c.Batch()
	for _, op := range b.Ops {
		ref := c.Doc(op.Path)
		switch op.Kind {
		case docstore.OpSet:
			if op.Merge {
				wb.Set(ref, orEmpty(op.Data), firestore.MergeAll)
			} else {
				wb.Set(ref, orEmpty(op.Data))
			}
		case docstore.OpUpdate:
			wb.Update(ref, updates(op.Data))
		case docstore.OpDelete:
			wb.Delete(ref)
		}
	}
	_, err := wb.Commit(ctx)
	observability.Current().ObserveBatchCommit("firestore", err)
	return translate(err, "batch")
}

func setOptions(opts []docstore.SetOption) []firestore.SetOption {
	if docstore.IsMerge(opts) {
		return []firestore.SetOption{firestore.MergeAll}
	}
	return nil
}

// updates turns a nested patch into field-path updates so nested maps
// merge the same way as the other backends.
func updates(data map[string]any) []firestore.Update {
	var out []firestore.Update
	var walk func(prefix firestore.FieldPath, m map[string]any)
	walk = func(prefix firestore.FieldPath, m map[string]any) {
		for k, v := range m {
			fp := append(append(firestore.FieldPath{}, prefix...), k)
			if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
				walk(fp, sub)
				continue
			}
			out = append(out, firestore.Update{FieldPath: fp, Value: v})
		}
	}
	walk(nil, data)
	return out
}

func fromSnapshot(snap *firestore.DocumentSnapshot) *docstore.Doc {
	return &docstore.Doc{
		ID:   snap.Ref.ID,
		Path: relativePath(snap.Ref.Path),
		Data: orEmpty(snap.Data()),
	}
}

// relativePath strips "projects/{p}/databases/{d}/documents/".
func relativePath(full string) string {
	if i := strings.Index(full, "/documents/"); i >= 0 {
		return full[i+len("/documents/"):]
	}
	return full
}

func translate(err error, p string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", docstore.ErrNotFound, p)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", docstore.ErrConflict, p)
	}
	return err
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
