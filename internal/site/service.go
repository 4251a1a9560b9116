package site

import (
	"errors"

	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureSite returns the tenant's site, creating it on first opt-in. A tenant
// has exactly one site; repeated calls return the existing record.
func EnsureSite(tenantID uint, name string) (*models.Site, error) {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, tenantID).Error; err != nil {
		return nil, apperr.NotFound("tenant")
	}

	var s models.Site
	err := database.DB.Where("tenant_id = ?", tenantID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = tenant.Name
	}
	s = models.Site{TenantID: tenantID, Name: name}
	if err := database.DB.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func GetByTenant(tenantID uint) (*models.Site, error) {
	var s models.Site
	err := database.DB.Where("tenant_id = ?", tenantID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("site")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSite(siteID uint) (*models.Site, error) {
	var s models.Site
	err := database.DB.
		Preload("Theme").
		Preload("Pages", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		First(&s, siteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("site")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type PageInput struct {
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Content       datatypes.JSON        `json:"content"`
	Status        *models.PublishStatus `json:"status"`
	IsHomepage    bool                  `json:"is_homepage"`
	IsPortalLogin bool                  `json:"is_portal_login"`
}

// CreatePage adds a page to the site. Page slugs are authored explicitly, so
// a collision is surfaced as a conflict rather than auto-resolved.
func CreatePage(siteID uint, in PageInput) (*models.Page, error) {
	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Title)
	} else {
		slug = utils.Slugify(slug)
	}
	if slug == "" {
		slug = "page"
	}

	var count int64
	database.DB.Model(&models.Page{}).Where("site_id = ? AND slug = ?", siteID, slug).Count(&count)
	if count > 0 {
		return nil, apperr.Conflict("page slug %q already exists in this site", slug)
	}

	status := models.StatusDraft
	if in.Status != nil {
		status = *in.Status
	}
	content := in.Content
	if len(content) == 0 {
		content = datatypes.JSON([]byte("[]"))
	}

	p := models.Page{
		SiteID:        siteID,
		Title:         in.Title,
		Slug:          slug,
		Content:       content,
		Status:        status,
		IsHomepage:    in.IsHomepage,
		IsPortalLogin: in.IsPortalLogin,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

type PageUpdate struct {
	Title   *string               `json:"title"`
	Content *datatypes.JSON       `json:"content"`
	Status  *models.PublishStatus `json:"status"`
}

// UpdatePage edits a page in place. Locked pages stay editable; the lock only
// bars deletion and template replacement.
func UpdatePage(siteID, pageID uint, in PageUpdate) (*models.Page, error) {
	p, err := getPage(siteID, pageID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Status != nil {
		p.Status = *in.Status
	}

	if err := database.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func DeletePage(siteID, pageID uint) error {
	p, err := getPage(siteID, pageID)
	if err != nil {
		return err
	}
	if p.IsLocked {
		return apperr.Precondition("page %q is locked and cannot be deleted", p.Slug)
	}
	// page slugs sit under a hard unique index; a soft delete would make the
	// slug unusable for good, including for template re-application
	return database.DB.Unscoped().Delete(p).Error
}

// SetHomepage flips the homepage flag to the given page and clears it from
// every other page of the site.
func SetHomepage(siteID, pageID uint) (*models.Page, error) {
	p, err := getPage(siteID, pageID)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Page{}).
			Where("site_id = ? AND id != ?", siteID, pageID).
			Update("is_homepage", false).Error; err != nil {
			return err
		}
		return tx.Model(p).Update("is_homepage", true).Error
	})
	if err != nil {
		return nil, err
	}
	p.IsHomepage = true
	return p, nil
}

func ListPages(siteID uint) ([]models.Page, error) {
	var pages []models.Page
	err := database.DB.Where("site_id = ?", siteID).Order("sort_order, id").Find(&pages).Error
	return pages, err
}

func GetPageBySlug(siteID uint, slug string) (*models.Page, error) {
	var p models.Page
	err := database.DB.Where("site_id = ? AND slug = ?", siteID, slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("page")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getPage(siteID, pageID uint) (*models.Page, error) {
	var p models.Page
	err := database.DB.Where("site_id = ?", siteID).First(&p, pageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("page")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func CreateMenu(siteID uint, name, location string, items datatypes.JSON) (*models.Menu, error) {
	m := models.Menu{SiteID: siteID, Name: name, Location: location, Items: items}
	if err := database.DB.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func ListMenus(siteID uint) ([]models.Menu, error) {
	var menus []models.Menu
	err := database.DB.Where("site_id = ?", siteID).Find(&menus).Error
	return menus, err
}

func DeleteMenu(siteID, menuID uint) error {
	res := database.DB.Where("site_id = ?", siteID).Delete(&models.Menu{}, menuID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("menu")
	}
	return nil
}

func CreateForm(siteID uint, name, slug string, fields datatypes.JSON, submitLabel string) (*models.Form, error) {
	if slug == "" {
		slug = utils.Slugify(name)
	}
	var count int64
	database.DB.Model(&models.Form{}).Where("site_id = ? AND slug = ?", siteID, slug).Count(&count)
	if count > 0 {
		return nil, apperr.Conflict("form slug %q already exists in this site", slug)
	}

	f := models.Form{SiteID: siteID, Name: name, Slug: slug, Fields: fields, SubmitLabel: submitLabel}
	if err := database.DB.Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func ListForms(siteID uint) ([]models.Form, error) {
	var forms []models.Form
	err := database.DB.Where("site_id = ?", siteID).Find(&forms).Error
	return forms, err
}

func DeleteForm(siteID, formID uint) error {
	res := database.DB.Unscoped().Where("site_id = ?", siteID).Delete(&models.Form{}, formID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("form")
	}
	return nil
}

func CreateFunnel(siteID uint, name, slug string, steps datatypes.JSON) (*models.Funnel, error) {
	if slug == "" {
		slug = utils.Slugify(name)
	}
	var count int64
	database.DB.Model(&models.Funnel{}).Where("site_id = ? AND slug = ?", siteID, slug).Count(&count)
	if count > 0 {
		return nil, apperr.Conflict("funnel slug %q already exists in this site", slug)
	}

	f := models.Funnel{SiteID: siteID, Name: name, Slug: slug, Steps: steps, IsActive: true}
	if err := database.DB.Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func ListFunnels(siteID uint) ([]models.Funnel, error) {
	var funnels []models.Funnel
	err := database.DB.Where("site_id = ?", siteID).Find(&funnels).Error
	return funnels, err
}

func DeleteFunnel(siteID, funnelID uint) error {
	res := database.DB.Unscoped().Where("site_id = ?", siteID).Delete(&models.Funnel{}, funnelID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("funnel")
	}
	return nil
}
