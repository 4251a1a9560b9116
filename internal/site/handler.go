package site

import (
	"github.com/campushq/sitebuilder/internal/auth"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// FromRequest resolves the authenticated tenant's site.
func FromRequest(c *fiber.Ctx) (*models.Site, error) {
	return GetByTenant(auth.TenantID(c))
}

type ensureSiteRequest struct {
	Name string `json:"name"`
}

func EnsureSiteHandler(c *fiber.Ctx) error {
	var body ensureSiteRequest
	_ = c.BodyParser(&body)

	s, err := EnsureSite(auth.TenantID(c), body.Name)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, s, "Site ready")
}

func GetSiteHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	full, err := GetSite(s.ID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, full, "Site retrieved")
}

func CreatePageHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body struct {
		Title         string                `json:"title"`
		Slug          string                `json:"slug"`
		Content       datatypes.JSON        `json:"content"`
		Status        *models.PublishStatus `json:"status"`
		IsHomepage    bool                  `json:"is_homepage"`
		IsPortalLogin bool                  `json:"is_portal_login"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Title == "" {
		return response.ValidationError(c, map[string]string{"title": "title is required"})
	}

	p, err := CreatePage(s.ID, PageInput{
		Title:         body.Title,
		Slug:          body.Slug,
		Content:       body.Content,
		Status:        body.Status,
		IsHomepage:    body.IsHomepage,
		IsPortalLogin: body.IsPortalLogin,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, p, "Page created successfully")
}

func ListPagesHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	pages, err := ListPages(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list pages")
	}
	return response.Success(c, pages, "Pages retrieved")
}

func UpdatePageHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	pageID, err := c.ParamsInt("page_id")
	if err != nil {
		return response.BadRequest(c, "Invalid page ID", nil)
	}

	var body PageUpdate
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	p, err := UpdatePage(s.ID, uint(pageID), body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p, "Page updated successfully")
}

func DeletePageHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	pageID, err := c.ParamsInt("page_id")
	if err != nil {
		return response.BadRequest(c, "Invalid page ID", nil)
	}

	if err := DeletePage(s.ID, uint(pageID)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Page deleted successfully")
}

func SetHomepageHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	pageID, err := c.ParamsInt("page_id")
	if err != nil {
		return response.BadRequest(c, "Invalid page ID", nil)
	}

	p, err := SetHomepage(s.ID, uint(pageID))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p, "Homepage updated")
}

// PreviewPageHandler renders live draft content for the authenticated editor.
func PreviewPageHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	p, err := GetPageBySlug(s.ID, c.Params("slug"))
	if err != nil {
		return response.FromError(c, err)
	}

	html, err := RenderPage(s.ID, p, false)
	if err != nil {
		return response.InternalError(c, "Failed to render page")
	}
	return c.Type("html").SendString(html)
}

// ServePageHandler is the unauthenticated public path. Only published pages
// are served, and collection blocks read published snapshots.
func ServePageHandler(c *fiber.Ctx) error {
	siteID, err := c.ParamsInt("site_id")
	if err != nil {
		return response.BadRequest(c, "Invalid site ID", nil)
	}

	p, err := GetPageBySlug(uint(siteID), c.Params("slug"))
	if err != nil {
		return response.FromError(c, err)
	}
	if !p.IsPublished() {
		return response.NotFound(c, "Page")
	}

	html, err := RenderPage(uint(siteID), p, true)
	if err != nil {
		return response.InternalError(c, "Failed to render page")
	}
	return c.Type("html").SendString(html)
}

func CreateMenuHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body struct {
		Name     string         `json:"name"`
		Location string         `json:"location"`
		Items    datatypes.JSON `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	m, err := CreateMenu(s.ID, body.Name, body.Location, body.Items)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, m, "Menu created successfully")
}

func ListMenusHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	menus, err := ListMenus(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list menus")
	}
	return response.Success(c, menus, "Menus retrieved")
}

func DeleteMenuHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	menuID, err := c.ParamsInt("menu_id")
	if err != nil {
		return response.BadRequest(c, "Invalid menu ID", nil)
	}
	if err := DeleteMenu(s.ID, uint(menuID)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Menu deleted successfully")
}

func CreateFormHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body struct {
		Name        string         `json:"name"`
		Slug        string         `json:"slug"`
		Fields      datatypes.JSON `json:"fields"`
		SubmitLabel string         `json:"submit_label"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	f, err := CreateForm(s.ID, body.Name, body.Slug, body.Fields, body.SubmitLabel)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, f, "Form created successfully")
}

func ListFormsHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	forms, err := ListForms(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list forms")
	}
	return response.Success(c, forms, "Forms retrieved")
}

func DeleteFormHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	formID, err := c.ParamsInt("form_id")
	if err != nil {
		return response.BadRequest(c, "Invalid form ID", nil)
	}
	if err := DeleteForm(s.ID, uint(formID)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Form deleted successfully")
}

func CreateFunnelHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body struct {
		Name  string         `json:"name"`
		Slug  string         `json:"slug"`
		Steps datatypes.JSON `json:"steps"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	f, err := CreateFunnel(s.ID, body.Name, body.Slug, body.Steps)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, f, "Funnel created successfully")
}

func ListFunnelsHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	funnels, err := ListFunnels(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list funnels")
	}
	return response.Success(c, funnels, "Funnels retrieved")
}

func DeleteFunnelHandler(c *fiber.Ctx) error {
	s, err := FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	funnelID, err := c.ParamsInt("funnel_id")
	if err != nil {
		return response.BadRequest(c, "Invalid funnel ID", nil)
	}
	if err := DeleteFunnel(s.ID, uint(funnelID)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Funnel deleted successfully")
}
