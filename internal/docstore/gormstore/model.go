package gormstore

import (
	"time"

	"gorm.io/datatypes"
)

// Document is one row per stored document. Parent is the containing
// collection path and Collection its last segment, which backs
// collection-group queries.
type Document struct {
	Path       string         `gorm:"column:path;primaryKey;size:1024" json:"path"`
	Parent     string         `gorm:"column:parent;not null;index:idx_documents_parent;size:1024" json:"parent"`
	Collection string         `gorm:"column:collection;not null;index:idx_documents_collection;size:255" json:"collection"`
	DocID      string         `gorm:"column:doc_id;not null;size:255" json:"doc_id"`
	Data       datatypes.JSON `gorm:"column:data;not null" json:"data"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
