// Package docstore is the hierarchical document database the stores are
// written against. Paths alternate collection and document segments:
// "users/{uid}" is a document, "users/{uid}/deadlines" a collection.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrConflict    = errors.New("document already exists")
	ErrInvalidPath = errors.New("invalid document path")
)

// Doc is one stored document. Data holds JSON-compatible values.
type Doc struct {
	ID   string
	Path string
	Data map[string]any
}

// Filter is an equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter { return Filter{Field: field, Value: value} }

type setConfig struct {
	merge bool
}

type SetOption func(*setConfig)

// Merge makes Set deep-merge into the existing document instead of
// replacing it. Nested maps merge key by key; other values are replaced.
func Merge() SetOption {
	return func(c *setConfig) { c.merge = true }
}

func applySetOptions(opts []SetOption) setConfig {
	var c setConfig
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// IsMerge reports whether opts request a merge write. Backends use it.
func IsMerge(opts []SetOption) bool { return applySetOptions(opts).merge }

type Store interface {
	Get(ctx context.Context, docPath string) (*Doc, error)
	// List returns the direct children of a collection matching every filter.
	List(ctx context.Context, collectionPath string, filters ...Filter) ([]Doc, error)
	// ListGroup returns every document whose parent collection is named
	// collectionID and whose path starts with pathPrefix.
	ListGroup(ctx context.Context, collectionID, pathPrefix string) ([]Doc, error)
	Create(ctx context.Context, collectionPath string, data map[string]any) (string, error)
	Set(ctx context.Context, docPath string, data map[string]any, opts ...SetOption) error
	// Update merges data into an existing document; ErrNotFound if absent.
	Update(ctx context.Context, docPath string, data map[string]any) error
	Delete(ctx context.Context, docPath string) error
	Batch() Batch
	Close() error
}

// Batch collects writes that commit together or not at all.
type Batch interface {
	Set(docPath string, data map[string]any, opts ...SetOption) Batch
	Update(docPath string, data map[string]any) Batch
	Delete(docPath string) Batch
	Len() int
	Commit(ctx context.Context) error
}

type OpKind int

const (
	OpSet OpKind = iota
	OpUpdate
	OpDelete
)

// Op is one queued batch write. Exported so backends can share BatchOps.
type Op struct {
	Kind  OpKind
	Path  string
	Data  map[string]any
	Merge bool
}

// BatchOps is an embeddable op recorder for Batch implementations.
type BatchOps struct {
	Ops []Op
	Err error
}

func (b *BatchOps) Add(kind OpKind, p string, data map[string]any, opts []SetOption) {
	if b.Err != nil {
		return
	}
	if err := ValidateDocPath(p); err != nil {
		b.Err = err
		return
	}
	b.Ops = append(b.Ops, Op{Kind: kind, Path: p, Data: Clone(data), Merge: IsMerge(opts)})
}
