package theme

import (
	"errors"

	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/utils"
	"gorm.io/gorm"
)

// Partial carries an upsert payload. Nil fields keep the stored value, or the
// hard default when no record exists yet. Values are stored verbatim: invalid
// colors or fonts degrade in the browser instead of failing the save.
type Partial struct {
	PrimaryColor    *string             `json:"primary_color"`
	SecondaryColor  *string             `json:"secondary_color"`
	AccentColor     *string             `json:"accent_color"`
	BackgroundColor *string             `json:"background_color"`
	SurfaceColor    *string             `json:"surface_color"`
	TextColor       *string             `json:"text_color"`
	MutedColor      *string             `json:"muted_color"`
	HeadingFont     *string             `json:"heading_font"`
	BodyFont        *string             `json:"body_font"`
	MonoFont        *string             `json:"mono_font"`
	BorderRadius    *string             `json:"border_radius"`
	ButtonRadius    *string             `json:"button_radius"`
	CardRadius      *string             `json:"card_radius"`
	ButtonStyle     *models.ButtonStyle `json:"button_style"`
	ShadowStyle     *models.ShadowStyle `json:"shadow_style"`
	ContainerWidth  *string             `json:"container_width"`
	CustomCSS       *string             `json:"custom_css"`
	DarkMode        *bool               `json:"dark_mode"`
}

// Get returns the site's theme record, or nil when the site has never saved
// one (callers fall back to models.DefaultTheme).
func Get(siteID uint) (*models.Theme, error) {
	var t models.Theme
	err := database.DB.Where("site_id = ?", siteID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Set upserts the site's theme row from the partial payload.
func Set(siteID uint, in Partial) (*models.Theme, error) {
	var t models.Theme
	err := database.DB.Where("site_id = ?", siteID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t = models.DefaultTheme()
		t.SiteID = siteID
	} else if err != nil {
		return nil, err
	}

	applyPartial(&t, in)

	if err := database.DB.Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Replace overwrites the whole 1:1 row with the given token set, keeping only
// the row identity. Used by template application.
func Replace(tx *gorm.DB, siteID uint, tokens models.Theme) (*models.Theme, error) {
	var t models.Theme
	err := tx.Where("site_id = ?", siteID).First(&t).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, createdAt := t.ID, t.CreatedAt
	t = tokens
	t.ID = id
	t.CreatedAt = createdAt
	t.SiteID = siteID

	if err := tx.Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func applyPartial(t *models.Theme, in Partial) {
	if in.PrimaryColor != nil {
		t.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		t.SecondaryColor = *in.SecondaryColor
	}
	if in.AccentColor != nil {
		t.AccentColor = *in.AccentColor
	}
	if in.BackgroundColor != nil {
		t.BackgroundColor = *in.BackgroundColor
	}
	if in.SurfaceColor != nil {
		t.SurfaceColor = *in.SurfaceColor
	}
	if in.TextColor != nil {
		t.TextColor = *in.TextColor
	}
	if in.MutedColor != nil {
		t.MutedColor = *in.MutedColor
	}
	if in.HeadingFont != nil {
		t.HeadingFont = *in.HeadingFont
	}
	if in.BodyFont != nil {
		t.BodyFont = *in.BodyFont
	}
	if in.MonoFont != nil {
		t.MonoFont = *in.MonoFont
	}
	if in.BorderRadius != nil {
		t.BorderRadius = *in.BorderRadius
	}
	if in.ButtonRadius != nil {
		t.ButtonRadius = *in.ButtonRadius
	}
	if in.CardRadius != nil {
		t.CardRadius = *in.CardRadius
	}
	if in.ButtonStyle != nil {
		t.ButtonStyle = *in.ButtonStyle
	}
	if in.ShadowStyle != nil {
		t.ShadowStyle = *in.ShadowStyle
	}
	if in.ContainerWidth != nil {
		t.ContainerWidth = *in.ContainerWidth
	}
	if in.CustomCSS != nil {
		t.CustomCSS = utils.StripMarkup(*in.CustomCSS)
	}
	if in.DarkMode != nil {
		t.DarkMode = *in.DarkMode
	}
}
