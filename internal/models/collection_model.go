package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldString    FieldType = "string"
	FieldText      FieldType = "text"
	FieldRichText  FieldType = "richtext"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldDate      FieldType = "date"
	FieldImage     FieldType = "image"
	FieldReference FieldType = "reference"
	FieldSelect    FieldType = "select"
	FieldList      FieldType = "list"
)

type Collection struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SiteID      uint              `gorm:"index:idx_collection_site_slug,unique" json:"site_id"`
	Slug        string            `gorm:"size:150;index:idx_collection_site_slug,unique" json:"slug"`
	Name        string            `gorm:"size:150" json:"name"`
	Description string            `gorm:"size:500" json:"description"`
	SortOrder   int               `json:"sort_order"`
	Fields      []CollectionField `gorm:"foreignKey:CollectionID" json:"fields,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

type CollectionField struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CollectionID uint           `gorm:"index:idx_field_collection_key,unique" json:"collection_id"`
	FieldID      string         `gorm:"size:100;index:idx_field_collection_key,unique" json:"field_id"`
	Label        string         `gorm:"size:150" json:"label"`
	Type         FieldType      `gorm:"size:30" json:"type"`
	Required     bool           `json:"required"`
	IsTitle      bool           `json:"is_title"`
	IsSlugSource bool           `json:"is_slug_source"`
	Options      datatypes.JSON `json:"options,omitempty"`
	DefaultValue string         `gorm:"size:500" json:"default_value,omitempty"`
	SortOrder    int            `json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// CollectionItem carries a live draft (FieldData) and a frozen public snapshot
// (PublishedFieldData). Publishing is the only operation that copies one into
// the other; unpublishing flips the status but keeps the last snapshot.
type CollectionItem struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CollectionID       uint           `gorm:"index:idx_item_collection_slug,unique" json:"collection_id"`
	Slug               string         `gorm:"size:150;index:idx_item_collection_slug,unique" json:"slug"`
	Status             PublishStatus  `gorm:"type:publish_status;default:'draft';index" json:"status"`
	FieldData          datatypes.JSON `json:"field_data"`
	PublishedFieldData datatypes.JSON `json:"published_field_data,omitempty"`
	PublishedAt        *time.Time     `json:"published_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *CollectionItem) IsPublished() bool {
	return i.Status == StatusPublished
}
