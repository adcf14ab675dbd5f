// Package gormstore implements docstore.Store on a relational database
// through GORM: Postgres in production, SQLite for local runs and tests.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

var _ docstore.Store = (*Store)(nil)

type Config struct {
	Driver string // "postgres" or "sqlite"
	DSN    string
	// SlowThreshold for the GORM logger; zero means one second.
	SlowThreshold time.Duration
}

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the configured database. It does not migrate; call
// Migrate or run `aspire migrate`.
func Open(cfg Config, baseLog *logger.Logger) (*Store, error) {
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{Logger: gormLog, TranslateError: true}

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", cfg.Driver)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	if dialector.Name() == "sqlite" {
		// SQLite allows one writer; a single connection serialises batches
		// instead of surfacing "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return New(db, baseLog), nil
}

// New wraps an existing connection.
func New(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("store", "GormDocumentStore")}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Document{})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, docPath string) (*docstore.Doc, error) {
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return nil, err
	}
	row, err := getRow(s.db.WithContext(ctx), docPath, false)
	if err != nil {
		return nil, err
	}
	return toDoc(row)
}

func (s *Store) List(ctx context.Context, collectionPath string, filters ...docstore.Filter) ([]docstore.Doc, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("parent = ?", collectionPath)
	for _, f := range filters {
		q = q.Where(datatypes.JSONQuery("data").Equals(f.Value, f.Field))
	}
	var rows []Document
	if err := q.Order("path ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, collectionPath)
	}
	return toDocs(rows, func(d docstore.Doc) bool { return docstore.Matches(d.Data, filters) })
}

func (s *Store) ListGroup(ctx context.Context, collectionID, pathPrefix string) ([]docstore.Doc, error) {
	var rows []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collectionID).
		Where(`path LIKE ? ESCAPE '\'`, escapeLike(pathPrefix)+"%").
		Order("path ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, pathPrefix)
	}
	return toDocs(rows, func(d docstore.Doc) bool { return strings.HasPrefix(d.Path, pathPrefix) })
}

func (s *Store) Create(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	if err := docstore.ValidateCollectionPath(collectionPath); err != nil {
		return "", err
	}
	id := docstore.NewID()
	row, err := newRow(docstore.Join(collectionPath, id), data)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", translate(err, row.Path)
	}
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
	if err := docstore.ValidateDocPath(docPath); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Where("path = ?", docPath).Delete(&Document{}).Error, docPath)
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
	err := b.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range b.Ops {
			if err := apply(tx, op); err != nil {
				return err
			}
		}
		return nil
	})
	observability.Current().ObserveBatchCommit("gorm", err)
	return err
}

func apply(tx *gorm.DB, op docstore.Op) error {
	switch op.Kind {
	case docstore.OpDelete:
		return translate(tx.Where("path = ?", op.Path).Delete(&Document{}).Error, op.Path)
	case docstore.OpUpdate:
		cur, err := getRow(tx, op.Path, true)
		if err != nil {
			return err
		}
		return writeMerged(tx, cur, op.Data)
	case docstore.OpSet:
		if op.Merge {
			cur, err := getRow(tx, op.Path, true)
			switch {
			case err == nil:
				return writeMerged(tx, cur, op.Data)
			case !errors.Is(err, docstore.ErrNotFound):
				return err
			}
		}
		row, err := newRow(op.Path, op.Data)
		if err != nil {
			return err
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).Create(row).Error
		return translate(err, op.Path)
	}
	return fmt.Errorf("unknown batch op %d", op.Kind)
}

func writeMerged(tx *gorm.DB, cur *Document, patch map[string]any) error {
	var data map[string]any
	if err := json.Unmarshal(cur.Data, &data); err != nil {
		return fmt.Errorf("decode %s: %w", cur.Path, err)
	}
	raw, err := json.Marshal(docstore.MergeInto(data, patch))
	if err != nil {
		return fmt.Errorf("encode %s: %w", cur.Path, err)
	}
	err = tx.Model(&Document{}).
		Where("path = ?", cur.Path).
		Updates(map[string]any{"data": datatypes.JSON(raw), "updated_at": time.Now()}).Error
	return translate(err, cur.Path)
}

func getRow(tx *gorm.DB, p string, forUpdate bool) (*Document, error) {
	if forUpdate && tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row Document
	if err := tx.Where("path = ?", p).First(&row).Error; err != nil {
		return nil, translate(err, p)
	}
	return &row, nil
}

func newRow(p string, data map[string]any) (*Document, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", p, err)
	}
	parent := docstore.Parent(p)
	now := time.Now()
	return &Document{
		Path:       p,
		Parent:     parent,
		Collection: docstore.Base(parent),
		DocID:      docstore.Base(p),
		Data:       datatypes.JSON(raw),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func toDoc(row *Document) (*docstore.Doc, error) {
	var data map[string]any
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", row.Path, err)
		}
	}
	if data == nil {
		data = map[string]any{}
	}
	return &docstore.Doc{ID: row.DocID, Path: row.Path, Data: data}, nil
}

func toDocs(rows []Document, keep func(docstore.Doc) bool) ([]docstore.Doc, error) {
	out := make([]docstore.Doc, 0, len(rows))
	for i := range rows {
		d, err := toDoc(&rows[i])
		if err != nil {
			return nil, err
		}
		if keep(*d) {
			out = append(out, *d)
		}
	}
	return out, nil
}

// translate maps driver errors onto docstore sentinels.
func translate(err error, p string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", docstore.ErrNotFound, p)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", docstore.ErrConflict, p)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", docstore.ErrConflict, p)
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
