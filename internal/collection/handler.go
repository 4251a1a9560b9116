package collection

import (
	"errors"

	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/response"
	"github.com/campushq/sitebuilder/internal/site"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func colBySlug(siteID uint, slug string, col *models.Collection) error {
	err := database.DB.Where("site_id = ? AND slug = ?", siteID, slug).First(col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("collection")
	}
	return err
}

type createCollectionRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func CreateCollectionHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body createCollectionRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	col, err := CreateCollection(s.ID, body.Name, body.Slug, body.Description)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, col, "Collection created successfully")
}

func ListCollectionsHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	cols, err := ListCollections(s.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list collections")
	}
	return response.Success(c, cols, "Collections retrieved")
}

func GetCollectionHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}

	col, err := GetCollection(s.ID, uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, col, "Collection retrieved")
}

func UpdateCollectionHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}

	var body CollectionUpdate
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	col, err := UpdateCollection(s.ID, uint(id), body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, col, "Collection updated successfully")
}

func DeleteCollectionHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}

	if err := DeleteCollection(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Collection deleted successfully")
}

func AddFieldHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}
	if _, err := GetCollection(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}

	var body FieldInput
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Label == "" || body.Type == "" {
		return response.ValidationError(c, map[string]string{
			"label": "label is required",
			"type":  "type is required",
		})
	}

	field, err := AddField(uint(id), body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, field, "Field added successfully")
}

func UpdateFieldHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("field_id")
	if err != nil {
		return response.BadRequest(c, "Invalid field ID", nil)
	}

	var body FieldUpdate
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	field, err := UpdateField(s.ID, uint(id), body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, field, "Field updated successfully")
}

func DeleteFieldHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("field_id")
	if err != nil {
		return response.BadRequest(c, "Invalid field ID", nil)
	}

	if err := DeleteField(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Field deleted successfully")
}

type createItemRequest struct {
	Slug      string                 `json:"slug"`
	Status    models.PublishStatus   `json:"status"`
	FieldData map[string]interface{} `json:"field_data"`
}

func CreateItemHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}
	if _, err := GetCollection(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}

	var body createItemRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	item, err := CreateItem(uint(id), body.FieldData, body.Slug, body.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, item, "Item created successfully")
}

func ListItemsHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("collection_id")
	if err != nil {
		return response.BadRequest(c, "Invalid collection ID", nil)
	}
	if _, err := GetCollection(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}

	items, err := ListItems(uint(id))
	if err != nil {
		return response.InternalError(c, "Failed to list items")
	}
	return response.Success(c, items, "Items retrieved")
}

type updateItemRequest struct {
	FieldData map[string]interface{} `json:"field_data"`
}

func UpdateItemHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID", nil)
	}

	var body updateItemRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	item, err := UpdateItem(s.ID, uint(id), body.FieldData)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, item, "Item updated successfully")
}

func PublishItemHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID", nil)
	}

	item, err := PublishItem(s.ID, uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, item, "Item published successfully")
}

func UnpublishItemHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID", nil)
	}

	item, err := UnpublishItem(s.ID, uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, item, "Item unpublished successfully")
}

func DeleteItemHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID", nil)
	}

	if err := DeleteItem(s.ID, uint(id)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, nil, "Item deleted successfully")
}

type bulkRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

func BulkPublishHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body bulkRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if len(body.ItemIDs) == 0 {
		return response.ValidationError(c, map[string]string{"item_ids": "item_ids is required"})
	}

	return response.Success(c, BulkPublish(s.ID, body.ItemIDs), "Bulk publish completed")
}

func BulkDeleteHandler(c *fiber.Ctx) error {
	s, err := site.FromRequest(c)
	if err != nil {
		return response.FromError(c, err)
	}

	var body bulkRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if len(body.ItemIDs) == 0 {
		return response.ValidationError(c, map[string]string{"item_ids": "item_ids is required"})
	}

	return response.Success(c, BulkDelete(s.ID, body.ItemIDs), "Bulk delete completed")
}

// PublishedItemsHandler is the unauthenticated read path for collection
// content. It serves frozen snapshots only.
func PublishedItemsHandler(c *fiber.Ctx) error {
	siteID, err := c.ParamsInt("site_id")
	if err != nil {
		return response.BadRequest(c, "Invalid site ID", nil)
	}

	var col models.Collection
	if err := colBySlug(uint(siteID), c.Params("collection_slug"), &col); err != nil {
		return response.FromError(c, err)
	}

	items, err := PublishedItems(col.ID)
	if err != nil {
		return response.InternalError(c, "Failed to list items")
	}
	return response.Success(c, items, "Items retrieved")
}

func PublishedItemHandler(c *fiber.Ctx) error {
	siteID, err := c.ParamsInt("site_id")
	if err != nil {
		return response.BadRequest(c, "Invalid site ID", nil)
	}

	var col models.Collection
	if err := colBySlug(uint(siteID), c.Params("collection_slug"), &col); err != nil {
		return response.FromError(c, err)
	}

	item, err := PublishedItem(col.ID, c.Params("item_slug"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, item, "Item retrieved")
}
