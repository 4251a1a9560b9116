package server

import (
	"time"

	"github.com/campushq/sitebuilder/internal/auth"
	"github.com/campushq/sitebuilder/internal/collection"
	"github.com/campushq/sitebuilder/internal/site"
	"github.com/campushq/sitebuilder/internal/template"
	"github.com/campushq/sitebuilder/internal/theme"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Site builder API is running",
		})
	})

	// ==========================================
	// PUBLIC SITE SERVING (no authentication)
	// ==========================================
	public := app.Group("/public", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	public.Get("/sites/:site_id/pages/:slug", site.ServePageHandler)
	public.Get("/sites/:site_id/collections/:collection_slug/items", collection.PublishedItemsHandler)
	public.Get("/sites/:site_id/collections/:collection_slug/items/:item_slug", collection.PublishedItemHandler)

	// ==========================================
	// BUILDER API (authenticated)
	// ==========================================
	api := app.Group("/api")
	api.Use(auth.JWTProtected())

	mutate := auth.MutationProtected()

	// Site
	api.Post("/site", mutate, site.EnsureSiteHandler)
	api.Get("/site", site.GetSiteHandler)

	// Pages
	api.Post("/site/pages", mutate, site.CreatePageHandler)
	api.Get("/site/pages", site.ListPagesHandler)
	api.Put("/site/pages/:page_id", mutate, site.UpdatePageHandler)
	api.Delete("/site/pages/:page_id", mutate, site.DeletePageHandler)
	api.Post("/site/pages/:page_id/homepage", mutate, site.SetHomepageHandler)
	api.Get("/site/preview/:slug", site.PreviewPageHandler)

	// Theme
	api.Get("/site/theme", theme.GetThemeHandler)
	api.Put("/site/theme", mutate, theme.SetThemeHandler)

	// Menus, forms, funnels
	api.Post("/site/menus", mutate, site.CreateMenuHandler)
	api.Get("/site/menus", site.ListMenusHandler)
	api.Delete("/site/menus/:menu_id", mutate, site.DeleteMenuHandler)
	api.Post("/site/forms", mutate, site.CreateFormHandler)
	api.Get("/site/forms", site.ListFormsHandler)
	api.Delete("/site/forms/:form_id", mutate, site.DeleteFormHandler)
	api.Post("/site/funnels", mutate, site.CreateFunnelHandler)
	api.Get("/site/funnels", site.ListFunnelsHandler)
	api.Delete("/site/funnels/:funnel_id", mutate, site.DeleteFunnelHandler)

	// Collections
	api.Post("/collections", mutate, collection.CreateCollectionHandler)
	api.Get("/collections", collection.ListCollectionsHandler)
	api.Get("/collections/:collection_id", collection.GetCollectionHandler)
	api.Put("/collections/:collection_id", mutate, collection.UpdateCollectionHandler)
	api.Delete("/collections/:collection_id", mutate, collection.DeleteCollectionHandler)

	// Fields
	api.Post("/collections/:collection_id/fields", mutate, collection.AddFieldHandler)
	api.Put("/fields/:field_id", mutate, collection.UpdateFieldHandler)
	api.Delete("/fields/:field_id", mutate, collection.DeleteFieldHandler)

	// Items
	api.Post("/collections/:collection_id/items", mutate, collection.CreateItemHandler)
	api.Get("/collections/:collection_id/items", collection.ListItemsHandler)
	api.Put("/items/:item_id", mutate, collection.UpdateItemHandler)
	api.Post("/items/:item_id/publish", mutate, collection.PublishItemHandler)
	api.Post("/items/:item_id/unpublish", mutate, collection.UnpublishItemHandler)
	api.Delete("/items/:item_id", mutate, collection.DeleteItemHandler)
	api.Post("/items/bulk-publish", mutate, collection.BulkPublishHandler)
	api.Post("/items/bulk-delete", mutate, collection.BulkDeleteHandler)

	// Templates
	api.Get("/templates", template.ListTemplatesHandler)
	api.Get("/templates/:template_id", template.GetTemplateHandler)
	api.Post("/templates/:template_id/apply", mutate, template.ApplyTemplateHandler)
}
