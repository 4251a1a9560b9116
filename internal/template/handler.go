package template

import (
	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/response"
	"github.com/campushq/sitebuilder/internal/site"
	"github.com/gofiber/fiber/v2"
)

func ListTemplatesHandler(c *fiber.Ctx) error {
	templates, err := List(models.TemplateMode(c.Query("mode")), c.Query("category"))
	if err != nil {
		return response.InternalError(c, "Failed to list templates")
	}
	return response.Success(c, templates, "Templates retrieved")
}

func GetTemplateHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("template_id")
	if err != nil {
		return response.BadRequest(c, "Invalid template ID", nil)
	}

	tpl, err := Get(uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, tpl, "Template retrieved")
}

type applyRequest struct {
	Mode ApplyMode `json:"mode"`
}

// ApplyTemplateHandler applies a template to the authenticated tenant's site.
// Merge is the default, non-destructive mode.
func ApplyTemplateHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		// a tenant without a site has not opted in yet; that is a failed
		// precondition of applying, not a missing resource
		if apperr.IsNotFound(err) {
			return response.PreconditionFailed(c, "Opt in to the website builder before applying a template")
		}
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("template_id")
	if err != nil {
		return response.BadRequest(c, "Invalid template ID", nil)
	}

	var body applyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Mode == "" {
		body.Mode = ApplyMerge
	}
	if !body.Mode.Valid() {
		return response.ValidationError(c, map[string]string{"mode": "mode must be replace, merge or theme"})
	}

	if err := Apply(uint(id), s.ID, body.Mode); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Template applied successfully")
}
