package template_test

import (
	"testing"

	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/site"
	"github.com/campushq/sitebuilder/internal/template"
	"github.com/campushq/sitebuilder/internal/testutils"
	"github.com/campushq/sitebuilder/internal/theme"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func seedTemplate(t *testing.T) *models.SiteTemplate {
	tpl := &models.SiteTemplate{
		Name: "Academy Classic",
		Slug: "academy-classic",
		Mode: models.ModeFullWebsite,
		Theme: datatypes.JSON([]byte(`{
			"primary_color": "#0f766e",
			"heading_font": "Merriweather"
		}`)),
		Pages: datatypes.JSON([]byte(`[
			{"slug": "home", "title": "Home", "is_homepage": true,
			 "content": [{"type":"hero","props":{"title":"Welcome"}}]},
			{"slug": "about", "title": "About Us",
			 "content": [{"type":"text","props":{"text":"About our school"}}]},
			{"slug": "portal-login", "title": "Portal", "is_portal_login": true,
			 "content": [{"type":"section","props":{}}]}
		]`)),
	}
	assert.NoError(t, database.DB.Create(tpl).Error)
	return tpl
}

func setupApply(t *testing.T) (*models.Site, *models.SiteTemplate) {
	db := testutils.TestDB(t)
	database.DB = db

	tenant := testutils.CreateTestTenant(t, db, "Test School", "test-school")
	site := testutils.CreateTestSite(t, db, tenant.ID, "Test School")
	return site, seedTemplate(t)
}

func pagesBySlug(t *testing.T, siteID uint) map[string]models.Page {
	var pages []models.Page
	assert.NoError(t, database.DB.Where("site_id = ?", siteID).Find(&pages).Error)
	out := make(map[string]models.Page, len(pages))
	for _, p := range pages {
		out[p.Slug] = p
	}
	return out
}

func TestApplyMergeIntoEmptySite(t *testing.T) {
	site, tpl := setupApply(t)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyMerge))

	pages := pagesBySlug(t, site.ID)
	assert.Len(t, pages, 3)
	assert.True(t, pages["home"].IsHomepage)
	assert.True(t, pages["portal-login"].IsPortalLogin)
	assert.Equal(t, models.StatusPublished, pages["about"].Status)

	saved, err := theme.Get(site.ID)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "#0f766e", saved.PrimaryColor)
	assert.Equal(t, "Merriweather", saved.HeadingFont)
	assert.Equal(t, models.DefaultTheme().BodyFont, saved.BodyFont, "sparse snapshot falls back to stock tokens")
}

func TestApplyMergePreservesTenantEdits(t *testing.T) {
	site, tpl := setupApply(t)

	edited := models.Page{
		SiteID: site.ID, Slug: "about", Title: "Our Story",
		Content: datatypes.JSON([]byte(`[{"type":"text","props":{"text":"hand written"}}]`)),
		Status:  models.StatusPublished,
	}
	assert.NoError(t, database.DB.Create(&edited).Error)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyMerge))

	pages := pagesBySlug(t, site.ID)
	assert.Len(t, pages, 3, "missing pages are created")
	assert.Equal(t, "Our Story", pages["about"].Title, "matching slug is left untouched")
	assert.Contains(t, string(pages["about"].Content), "hand written")
}

func TestApplyMergeIsIdempotent(t *testing.T) {
	site, tpl := setupApply(t)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyMerge))
	first := pagesBySlug(t, site.ID)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyMerge))
	second := pagesBySlug(t, site.ID)

	assert.Len(t, second, len(first))
	for slug, p := range first {
		assert.Equal(t, p.ID, second[slug].ID, "reapplying merge must not recreate pages")
		assert.Equal(t, string(p.Content), string(second[slug].Content))
	}
}

func TestApplyReplaceOverwritesUnlocked(t *testing.T) {
	site, tpl := setupApply(t)

	edited := models.Page{
		SiteID: site.ID, Slug: "about", Title: "Our Story",
		Content: datatypes.JSON([]byte(`[{"type":"text","props":{"text":"hand written"}}]`)),
		Status:  models.StatusPublished,
	}
	locked := models.Page{
		SiteID: site.ID, Slug: "home", Title: "Locked Home",
		Content:  datatypes.JSON([]byte(`[{"type":"hero","props":{"title":"Keep me"}}]`)),
		Status:   models.StatusPublished,
		IsLocked: true,
	}
	extra := models.Page{
		SiteID: site.ID, Slug: "contact", Title: "Contact",
		Content: datatypes.JSON([]byte(`[]`)),
		Status:  models.StatusDraft,
	}
	assert.NoError(t, database.DB.Create(&edited).Error)
	assert.NoError(t, database.DB.Create(&locked).Error)
	assert.NoError(t, database.DB.Create(&extra).Error)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyReplace))

	pages := pagesBySlug(t, site.ID)
	assert.Equal(t, "About Us", pages["about"].Title, "unlocked matching page is overwritten")
	assert.Equal(t, "Locked Home", pages["home"].Title, "locked page survives replace")
	assert.Contains(t, string(pages["home"].Content), "Keep me")
	assert.Equal(t, "Contact", pages["contact"].Title, "pages outside the bundle are left alone")
}

func TestApplyThemeOnly(t *testing.T) {
	site, tpl := setupApply(t)

	existing := models.Page{
		SiteID: site.ID, Slug: "about", Title: "Our Story",
		Content: datatypes.JSON([]byte(`[]`)),
		Status:  models.StatusDraft,
	}
	assert.NoError(t, database.DB.Create(&existing).Error)

	assert.NoError(t, template.Apply(tpl.ID, site.ID, template.ApplyTheme))

	pages := pagesBySlug(t, site.ID)
	assert.Len(t, pages, 1, "theme mode must not create pages")
	assert.Equal(t, "Our Story", pages["about"].Title)

	saved, err := theme.Get(site.ID)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "#0f766e", saved.PrimaryColor)
}

func TestApplyErrors(t *testing.T) {
	site, tpl := setupApply(t)

	t.Run("unknown mode", func(t *testing.T) {
		err := template.Apply(tpl.ID, site.ID, template.ApplyMode("clone"))
		assert.Error(t, err)
		assert.True(t, apperr.IsPrecondition(err))
	})

	t.Run("unknown template", func(t *testing.T) {
		err := template.Apply(99999, site.ID, template.ApplyMerge)
		assert.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("unknown site", func(t *testing.T) {
		err := template.Apply(tpl.ID, 99999, template.ApplyMerge)
		assert.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestApplyMergeRestoresDeletedPage(t *testing.T) {
	s, tpl := setupApply(t)

	assert.NoError(t, template.Apply(tpl.ID, s.ID, template.ApplyMerge))

	about := pagesBySlug(t, s.ID)["about"]
	assert.NoError(t, site.DeletePage(s.ID, about.ID))

	assert.NoError(t, template.Apply(tpl.ID, s.ID, template.ApplyMerge),
		"deleting a template page must not block reapplying")
	pages := pagesBySlug(t, s.ID)
	assert.Contains(t, pages, "about")
	assert.NotEqual(t, about.ID, pages["about"].ID)
}

func TestApplyRollsBackOnPageFailure(t *testing.T) {
	s, _ := setupApply(t)

	// two bundles with the same slug; the second insert trips the unique index
	broken := &models.SiteTemplate{
		Name: "Broken", Slug: "broken", Mode: models.ModeFullWebsite,
		Theme: datatypes.JSON([]byte(`{"primary_color": "#123456"}`)),
		Pages: datatypes.JSON([]byte(`[
			{"slug": "dup", "title": "First", "content": []},
			{"slug": "dup", "title": "Second", "content": []}
		]`)),
	}
	assert.NoError(t, database.DB.Create(broken).Error)

	err := template.Apply(broken.ID, s.ID, template.ApplyMerge)
	assert.Error(t, err)

	pages := pagesBySlug(t, s.ID)
	assert.Empty(t, pages, "a failed apply must leave no partial pages behind")

	saved, themeErr := theme.Get(s.ID)
	assert.NoError(t, themeErr)
	assert.Nil(t, saved, "the theme write must roll back with the pages")
}

func TestListOrdersDefaultsFirst(t *testing.T) {
	_, tpl := setupApply(t)

	def := &models.SiteTemplate{
		Name: "Zebra Default", Slug: "zebra-default",
		Mode: models.ModePortalOnly, IsDefault: true,
	}
	assert.NoError(t, database.DB.Create(def).Error)

	all, err := template.List("", "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "zebra-default", all[0].Slug, "default templates list first")

	portal, err := template.List(models.ModePortalOnly, "")
	assert.NoError(t, err)
	assert.Len(t, portal, 1)
	assert.NotEqual(t, tpl.Slug, portal[0].Slug)
}

func TestSeedDefaultTemplates(t *testing.T) {
	database.DB = testutils.TestDB(t)

	assert.NoError(t, template.SeedDefaultTemplates())

	var count int64
	database.DB.Model(&models.SiteTemplate{}).Count(&count)
	assert.NotZero(t, count)

	// seeding again must not duplicate
	assert.NoError(t, template.SeedDefaultTemplates())
	var again int64
	database.DB.Model(&models.SiteTemplate{}).Count(&again)
	assert.Equal(t, count, again)
}
