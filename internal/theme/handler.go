package theme

import (
	"github.com/campushq/sitebuilder/internal/response"
	"github.com/campushq/sitebuilder/internal/site"
	"github.com/gofiber/fiber/v2"
)

func GetThemeHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	t, err := Get(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to load theme")
	}

	// nil means "use defaults"; surfaced as null so the editor can tell the
	// difference between saved and default tokens.
	return response.Success(c, t, "Theme retrieved")
}

func SetThemeHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body Partial
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	t, err := Set(s.ID, body)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, t, "Theme updated")
}
