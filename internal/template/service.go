package template

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/theme"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplyMode string

const (
	ApplyReplace ApplyMode = "replace"
	ApplyMerge   ApplyMode = "merge"
	ApplyTheme   ApplyMode = "theme"
)

func (m ApplyMode) Valid() bool {
	return m == ApplyReplace || m == ApplyMerge || m == ApplyTheme
}

// PageBundle is one page entry inside a template's serialized page array.
type PageBundle struct {
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Content       json.RawMessage `json:"content"`
	IsHomepage    bool            `json:"is_homepage,omitempty"`
	IsPortalLogin bool            `json:"is_portal_login,omitempty"`
}

// ThemeBundle mirrors the theme token set inside a template snapshot.
type ThemeBundle struct {
	PrimaryColor    string             `json:"primary_color"`
	SecondaryColor  string             `json:"secondary_color"`
	AccentColor     string             `json:"accent_color"`
	BackgroundColor string             `json:"background_color"`
	SurfaceColor    string             `json:"surface_color"`
	TextColor       string             `json:"text_color"`
	MutedColor      string             `json:"muted_color"`
	HeadingFont     string             `json:"heading_font"`
	BodyFont        string             `json:"body_font"`
	MonoFont        string             `json:"mono_font"`
	BorderRadius    string             `json:"border_radius"`
	ButtonRadius    string             `json:"button_radius"`
	CardRadius      string             `json:"card_radius"`
	ButtonStyle     models.ButtonStyle `json:"button_style"`
	ShadowStyle     models.ShadowStyle `json:"shadow_style"`
	ContainerWidth  string             `json:"container_width"`
	CustomCSS       string             `json:"custom_css,omitempty"`
	DarkMode        bool               `json:"dark_mode,omitempty"`
}

func (tb ThemeBundle) tokens() models.Theme {
	base := models.DefaultTheme()
	t := models.Theme{
		PrimaryColor:    tb.PrimaryColor,
		SecondaryColor:  tb.SecondaryColor,
		AccentColor:     tb.AccentColor,
		BackgroundColor: tb.BackgroundColor,
		SurfaceColor:    tb.SurfaceColor,
		TextColor:       tb.TextColor,
		MutedColor:      tb.MutedColor,
		HeadingFont:     tb.HeadingFont,
		BodyFont:        tb.BodyFont,
		MonoFont:        tb.MonoFont,
		BorderRadius:    tb.BorderRadius,
		ButtonRadius:    tb.ButtonRadius,
		CardRadius:      tb.CardRadius,
		ButtonStyle:     tb.ButtonStyle,
		ShadowStyle:     tb.ShadowStyle,
		ContainerWidth:  tb.ContainerWidth,
		CustomCSS:       tb.CustomCSS,
		DarkMode:        tb.DarkMode,
	}
	// sparse template snapshots fall back to the stock token set
	if t.PrimaryColor == "" {
		t.PrimaryColor = base.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = base.SecondaryColor
	}
	if t.AccentColor == "" {
		t.AccentColor = base.AccentColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = base.BackgroundColor
	}
	if t.SurfaceColor == "" {
		t.SurfaceColor = base.SurfaceColor
	}
	if t.TextColor == "" {
		t.TextColor = base.TextColor
	}
	if t.MutedColor == "" {
		t.MutedColor = base.MutedColor
	}
	if t.HeadingFont == "" {
		t.HeadingFont = base.HeadingFont
	}
	if t.BodyFont == "" {
		t.BodyFont = base.BodyFont
	}
	if t.MonoFont == "" {
		t.MonoFont = base.MonoFont
	}
	if t.BorderRadius == "" {
		t.BorderRadius = base.BorderRadius
	}
	if t.ButtonRadius == "" {
		t.ButtonRadius = base.ButtonRadius
	}
	if t.CardRadius == "" {
		t.CardRadius = base.CardRadius
	}
	if t.ButtonStyle == "" {
		t.ButtonStyle = base.ButtonStyle
	}
	if t.ShadowStyle == "" {
		t.ShadowStyle = base.ShadowStyle
	}
	if t.ContainerWidth == "" {
		t.ContainerWidth = base.ContainerWidth
	}
	return t
}

func List(mode models.TemplateMode, category string) ([]models.SiteTemplate, error) {
	query := database.DB.Order("is_default DESC, name")
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var templates []models.SiteTemplate
	err := query.Find(&templates).Error
	return templates, err
}

func Get(templateID uint) (*models.SiteTemplate, error) {
	var tpl models.SiteTemplate
	err := database.DB.First(&tpl, templateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("template")
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Apply reconciles a template bundle into a live site. The theme is written
// first, then pages according to the mode, and everything runs inside one
// transaction: a failure partway through leaves the site exactly as it was.
//
//	theme:   copy the template theme; pages untouched.
//	merge:   copy the theme; create pages whose slug is absent; a matching
//	         slug alone skips the bundle, so tenant edits are never touched
//	         and reapplying is a no-op beyond the theme refresh.
//	replace: copy the theme; overwrite non-locked pages by slug; locked pages
//	         are always skipped; extra tenant pages are left alone.
func Apply(templateID, siteID uint, mode ApplyMode) error {
	if !mode.Valid() {
		return apperr.Precondition("unknown apply mode %q", mode)
	}

	tpl, err := Get(templateID)
	if err != nil {
		return err
	}

	var s models.Site
	err = database.DB.First(&s, siteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("site")
	}
	if err != nil {
		return err
	}
	if s.TenantID == 0 {
		return apperr.Precondition("site %d has no owning tenant", s.ID)
	}

	var themeBundle ThemeBundle
	if len(tpl.Theme) > 0 {
		if err := json.Unmarshal(tpl.Theme, &themeBundle); err != nil {
			return fmt.Errorf("template %q has a malformed theme snapshot: %w", tpl.Slug, err)
		}
	}

	var pageBundles []PageBundle
	if len(tpl.Pages) > 0 {
		if err := json.Unmarshal(tpl.Pages, &pageBundles); err != nil {
			return fmt.Errorf("template %q has a malformed page array: %w", tpl.Slug, err)
		}
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// theme always lands before any page write
		if _, err := theme.Replace(tx, s.ID, themeBundle.tokens()); err != nil {
			return err
		}
		if mode == ApplyTheme {
			return nil
		}

		var existing []models.Page
		if err := tx.Where("site_id = ?", s.ID).Find(&existing).Error; err != nil {
			return err
		}
		bySlug := make(map[string]*models.Page, len(existing))
		for i := range existing {
			bySlug[existing[i].Slug] = &existing[i]
		}

		for _, bundle := range pageBundles {
			cur, exists := bySlug[bundle.Slug]

			if !exists {
				p := models.Page{
					SiteID:        s.ID,
					Slug:          bundle.Slug,
					Title:         bundle.Title,
					Content:       datatypes.JSON(bundle.Content),
					Status:        models.StatusPublished,
					IsHomepage:    bundle.IsHomepage,
					IsPortalLogin: bundle.IsPortalLogin,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
				continue
			}

			if mode == ApplyMerge {
				continue // slug presence alone skips the bundle
			}
			if cur.IsLocked {
				continue // locked pages survive replace in every case
			}

			cur.Title = bundle.Title
			cur.Content = datatypes.JSON(bundle.Content)
			if err := tx.Save(cur).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
