package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TemplateMode string

const (
	ModePortalOnly  TemplateMode = "portal_only"
	ModeFullWebsite TemplateMode = "full_website"
)

// SiteTemplate is a platform-owned starter bundle of pages plus a theme
// snapshot. Templates are read-only from every tenant's point of view; apply
// operations never mutate them.
type SiteTemplate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150" json:"name"`
	Slug      string         `gorm:"size:150;uniqueIndex" json:"slug"`
	Category  string         `gorm:"size:100;index" json:"category"`
	Mode      TemplateMode   `gorm:"size:30" json:"mode"`
	Pages     datatypes.JSON `json:"pages"`
	Theme     datatypes.JSON `json:"theme"`
	IsDefault bool           `json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
