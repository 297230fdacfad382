package domain

import "time"

// EntityType names the kind of versioned content a revision belongs to
type EntityType string

const (
	EntityThread EntityType = "thread"
	EntityPost   EntityType = "post"
)

// Revision is an immutable pre-edit snapshot of a versioned entity.
// Version is the version the entity had before the edit that produced the
// record, so an entity at current_version N has revisions 1..N-1.
// The unique index on (entity_type, entity_id, version) backs the
// no-gaps/no-duplicates invariant under concurrent edits.
type Revision struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntityType EntityType `gorm:"column:entity_type;type:varchar(10);uniqueIndex:idx_entity_version" json:"entity_type"`
	EntityID   uint64     `gorm:"column:entity_id;uniqueIndex:idx_entity_version" json:"entity_id"`
	Version    uint       `gorm:"column:version;uniqueIndex:idx_entity_version" json:"version"`
	Title      string     `gorm:"column:title;type:varchar(255)" json:"title,omitempty"`
	Content    string     `gorm:"column:content;type:mediumtext" json:"content"`
	EditedBy   uint64     `gorm:"column:edited_by" json:"edited_by"`
	SnapshotAt time.Time  `gorm:"column:snapshot_at;autoCreateTime" json:"snapshot_at"`
}

func (Revision) TableName() string { return "content_revisions" }
