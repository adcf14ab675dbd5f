// Package memory is an in-process docstore.Store for tests and
// STORE_DRIVER=memory. State lives in one map guarded by a RWMutex.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Dee1911/Aspire.can/internal/docstore"
)

var _ docstore.Store = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func New() *Store {
	return &Store{docs: make(map[string]map[string]any)}
}

func (s *Store) Get(ctx context.Context, docPath string) (*docstore.Doc, error) {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[docPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docstore.ErrNotFound, docPath)
	}
	return &docstore.Doc{ID: docstore.Base(docPath), Path: docPath, Data: docstore.Clone(data)}, nil
}

func (s *Store) List(ctx context.Context, collectionPath string, filters ...docstore.Filter) ([]docstore.Doc, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []docstore.Doc
	for p, data := range s.docs {
		if docstore.Parent(p) != collectionPath || !docstore.Matches(data, filters) {
			continue
		}
		out = append(out, docstore.Doc{ID: docstore.Base(p), Path: p, Data: docstore.Clone(data)})
	}
	sortByPath(out)
	return out, nil
}

func (s *Store) ListGroup(ctx context.Context, collectionID, pathPrefix string) ([]docstore.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []docstore.Doc
	for p, data := range s.docs {
		if !strings.HasPrefix(p, pathPrefix) || docstore.Base(docstore.Parent(p)) != collectionID {
			continue
		}
		out = append(out, docstore.Doc{ID: docstore.Base(p), Path: p, Data: docstore.Clone(data)})
	}
	sortByPath(out)
	return out, nil
}

func (s *Store) Create(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := docstore.NewID()
	p := docstore.Join(collectionPath, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[p]; exists {
		return "", fmt.Errorf("%w: %s", docstore.ErrConflict, p)
	}
	s.docs[p] = docstore.Clone(orEmpty(data))
	return id, nil
}

func (s *Store) Set(ctx context.Context, docPath string, data map[string]any, opts ...docstore.SetOption) error {
	b := s.Batch()
	b.Set(docPath, data, opts...)
	return b.Commit(ctx)
}

func (s *Store) Update(ctx context.Context, docPath string, data map[string]any) error {
	b := s.Batch()
	b.Update(docPath, data)
	return b.Commit(ctx)
}

func (s *Store) Delete(ctx context.Context, docPath string) error {
	b := s.Batch()
	b.Delete(docPath)
	return b.Commit(ctx)
}

func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

func (s *Store) Close() error { return nil }

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

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

// Commit stages every op against a private overlay and only publishes the
// overlay when all ops succeed.
func (b *batch) Commit(ctx context.Context) error {
	if b.Err != nil {
		return b.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	overlay := make(map[string]map[string]any, len(b.Ops))
	deleted := make(map[string]bool)
	current := func(p string) (map[string]any, bool) {
		if deleted[p] {
			return nil, false
		}
		if d, ok := overlay[p]; ok {
			return d, true
		}
		d, ok := s.docs[p]
		return d, ok
	}

	for _, op := range b.Ops {
		switch op.Kind {
		case docstore.OpSet:
			next := docstore.Clone(orEmpty(op.Data))
			if op.Merge {
				if cur, ok := current(op.Path); ok {
					next = docstore.MergeInto(docstore.Clone(cur), op.Data)
				}
			}
			overlay[op.Path] = next
			delete(deleted, op.Path)
		case docstore.OpUpdate:
			cur, ok := current(op.Path)
			if !ok {
				return fmt.Errorf("%w: %s", docstore.ErrNotFound, op.Path)
			}
			overlay[op.Path] = docstore.MergeInto(docstore.Clone(cur), op.Data)
		case docstore.OpDelete:
			delete(overlay, op.Path)
			deleted[op.Path] = true
		}
	}

	for p := range deleted {
		delete(s.docs, p)
	}
	for p, d := range overlay {
		s.docs[p] = d
	}
	return nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func sortByPath(docs []docstore.Doc) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
}
