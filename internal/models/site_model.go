package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

type ButtonStyle string

const (
	ButtonSolid    ButtonStyle = "solid"
	ButtonOutline  ButtonStyle = "outline"
	ButtonGradient ButtonStyle = "gradient"
	ButtonGhost    ButtonStyle = "ghost"
)

type ShadowStyle string

const (
	ShadowNone   ShadowStyle = "none"
	ShadowSubtle ShadowStyle = "subtle"
	ShadowMedium ShadowStyle = "medium"
	ShadowStrong ShadowStyle = "strong"
)

func EnsureEnum(db *gorm.DB) error {
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'publish_status') THEN
				CREATE TYPE publish_status AS ENUM (
					'draft',
					'published'
				);
			END IF;
		END
		$$;
	`).Error
}

type Tenant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150" json:"name"`
	Subdomain string         `gorm:"size:100;uniqueIndex" json:"subdomain"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Site is the builder aggregate for one tenant. Exactly one per tenant.
type Site struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"uniqueIndex" json:"tenant_id"`
	Tenant      *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Name        string         `gorm:"size:150" json:"name"`
	Theme       *Theme         `gorm:"foreignKey:SiteID" json:"theme,omitempty"`
	Pages       []Page         `gorm:"foreignKey:SiteID" json:"pages,omitempty"`
	Collections []Collection   `gorm:"foreignKey:SiteID" json:"collections,omitempty"`
	Menus       []Menu         `gorm:"foreignKey:SiteID" json:"menus,omitempty"`
	Forms       []Form         `gorm:"foreignKey:SiteID" json:"forms,omitempty"`
	Funnels     []Funnel       `gorm:"foreignKey:SiteID" json:"funnels,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Theme holds the design tokens for one site (1:1). Values are stored as-is;
// unparseable CSS values degrade in the browser rather than being rejected.
type Theme struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SiteID          uint        `gorm:"uniqueIndex" json:"site_id"`
	PrimaryColor    string      `gorm:"size:30" json:"primary_color"`
	SecondaryColor  string      `gorm:"size:30" json:"secondary_color"`
	AccentColor     string      `gorm:"size:30" json:"accent_color"`
	BackgroundColor string      `gorm:"size:30" json:"background_color"`
	SurfaceColor    string      `gorm:"size:30" json:"surface_color"`
	TextColor       string      `gorm:"size:30" json:"text_color"`
	MutedColor      string      `gorm:"size:30" json:"muted_color"`
	HeadingFont     string      `gorm:"size:150" json:"heading_font"`
	BodyFont        string      `gorm:"size:150" json:"body_font"`
	MonoFont        string      `gorm:"size:150" json:"mono_font"`
	BorderRadius    string      `gorm:"size:30" json:"border_radius"`
	ButtonRadius    string      `gorm:"size:30" json:"button_radius"`
	CardRadius      string      `gorm:"size:30" json:"card_radius"`
	ButtonStyle     ButtonStyle `gorm:"size:20" json:"button_style"`
	ShadowStyle     ShadowStyle `gorm:"size:20" json:"shadow_style"`
	ContainerWidth  string      `gorm:"size:30" json:"container_width"`
	CustomCSS       string      `gorm:"type:text" json:"custom_css"`
	DarkMode        bool        `json:"dark_mode"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// DefaultTheme is the token set used when a site has no theme record yet.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#2563eb",
		SecondaryColor:  "#0f172a",
		AccentColor:     "#f59e0b",
		BackgroundColor: "#ffffff",
		SurfaceColor:    "#f8fafc",
		TextColor:       "#0f172a",
		MutedColor:      "#64748b",
		HeadingFont:     "Inter",
		BodyFont:        "Inter",
		MonoFont:        "JetBrains Mono",
		BorderRadius:    "8px",
		ButtonRadius:    "8px",
		CardRadius:      "12px",
		ButtonStyle:     ButtonSolid,
		ShadowStyle:     ShadowSubtle,
		ContainerWidth:  "1200px",
	}
}

type Page struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SiteID        uint           `gorm:"index:idx_page_site_slug,unique" json:"site_id"`
	Slug          string         `gorm:"size:150;index:idx_page_site_slug,unique" json:"slug"`
	Title         string         `gorm:"size:200" json:"title"`
	Content       datatypes.JSON `json:"content"`
	Status        PublishStatus  `gorm:"type:publish_status;default:'draft';index" json:"status"`
	IsHomepage    bool           `json:"is_homepage"`
	IsPortalLogin bool           `json:"is_portal_login"`
	IsLocked      bool           `json:"is_locked"`
	SortOrder     int            `json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Page) IsPublished() bool {
	return p.Status == StatusPublished
}

type Menu struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SiteID    uint           `gorm:"index" json:"site_id"`
	Name      string         `gorm:"size:150" json:"name"`
	Location  string         `gorm:"size:50" json:"location"` // header, footer, sidebar
	Items     datatypes.JSON `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Form struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SiteID      uint           `gorm:"index:idx_form_site_slug,unique" json:"site_id"`
	Slug        string         `gorm:"size:150;index:idx_form_site_slug,unique" json:"slug"`
	Name        string         `gorm:"size:150" json:"name"`
	Fields      datatypes.JSON `json:"fields"`
	SubmitLabel string         `gorm:"size:100" json:"submit_label"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Funnel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SiteID    uint           `gorm:"index:idx_funnel_site_slug,unique" json:"site_id"`
	Slug      string         `gorm:"size:150;index:idx_funnel_site_slug,unique" json:"slug"`
	Name      string         `gorm:"size:150" json:"name"`
	Steps     datatypes.JSON `json:"steps"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
