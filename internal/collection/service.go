package collection

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/campushq/sitebuilder/internal/apperr"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func CreateCollection(siteID uint, name, slug, description string) (*models.Collection, error) {
	if slug == "" {
		slug = utils.Slugify(name)
	} else {
		slug = utils.Slugify(slug)
	}

	var count int64
	database.DB.Model(&models.Collection{}).
		Where("site_id = ? AND slug = ?", siteID, slug).Count(&count)
	if count > 0 {
		return nil, apperr.Conflict("collection slug %q already exists in this site", slug)
	}

	var maxOrder int64
	database.DB.Model(&models.Collection{}).Where("site_id = ?", siteID).Count(&maxOrder)

	col := models.Collection{
		SiteID:      siteID,
		Name:        name,
		Slug:        slug,
		Description: description,
		SortOrder:   int(maxOrder),
	}
	if err := database.DB.Create(&col).Error; err != nil {
		return nil, err
	}
	return &col, nil
}

func ListCollections(siteID uint) ([]models.Collection, error) {
	var cols []models.Collection
	err := database.DB.Where("site_id = ?", siteID).
		Order("sort_order, id").
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Find(&cols).Error
	return cols, err
}

func GetCollection(siteID, collectionID uint) (*models.Collection, error) {
	var col models.Collection
	err := database.DB.Where("site_id = ?", siteID).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		First(&col, collectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("collection")
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

type CollectionUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// UpdateCollection edits collection metadata. The slug is fixed at creation;
// pages and blocks reference collections by slug.
func UpdateCollection(siteID, collectionID uint, in CollectionUpdate) (*models.Collection, error) {
	col, err := GetCollection(siteID, collectionID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		col.Name = *in.Name
	}
	if in.Description != nil {
		col.Description = *in.Description
	}
	if in.SortOrder != nil {
		col.SortOrder = *in.SortOrder
	}

	if err := database.DB.Save(col).Error; err != nil {
		return nil, err
	}
	return col, nil
}

// DeleteCollection cascades to the collection's fields and items.
func DeleteCollection(siteID, collectionID uint) error {
	col, err := GetCollection(siteID, collectionID)
	if err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("collection_id = ?", col.ID).Delete(&models.CollectionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("collection_id = ?", col.ID).Delete(&models.CollectionField{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(col).Error
	})
}

type FieldInput struct {
	FieldID      string           `json:"field_id"`
	Label        string           `json:"label"`
	Type         models.FieldType `json:"type"`
	Required     bool             `json:"required"`
	IsTitle      bool             `json:"is_title"`
	IsSlugSource bool             `json:"is_slug_source"`
	Options      datatypes.JSON   `json:"options"`
	DefaultValue string           `json:"default_value"`
}

// AddField appends a field definition to the collection. At most one field
// per collection may carry is_title and at most one is_slug_source; setting
// either flag clears it from sibling fields in the same transaction.
func AddField(collectionID uint, in FieldInput) (*models.CollectionField, error) {
	var col models.Collection
	if err := database.DB.First(&col, collectionID).Error; err != nil {
		return nil, apperr.NotFound("collection")
	}

	fieldID := in.FieldID
	if fieldID == "" {
		fieldID = utils.SnakeCase(in.Label)
	} else {
		fieldID = utils.SnakeCase(fieldID)
	}

	var count int64
	database.DB.Model(&models.CollectionField{}).
		Where("collection_id = ? AND field_id = ?", collectionID, fieldID).Count(&count)
	if count > 0 {
		return nil, apperr.Conflict("field %q already exists in this collection", fieldID)
	}

	var maxOrder int
	row := database.DB.Model(&models.CollectionField{}).
		Where("collection_id = ?", collectionID).
		Select("COALESCE(MAX(sort_order), -1)").Row()
	_ = row.Scan(&maxOrder)

	field := models.CollectionField{
		CollectionID: collectionID,
		FieldID:      fieldID,
		Label:        in.Label,
		Type:         in.Type,
		Required:     in.Required,
		IsTitle:      in.IsTitle,
		IsSlugSource: in.IsSlugSource,
		Options:      in.Options,
		DefaultValue: in.DefaultValue,
		SortOrder:    maxOrder + 1,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if in.IsTitle {
			if err := tx.Model(&models.CollectionField{}).
				Where("collection_id = ?", collectionID).
				Update("is_title", false).Error; err != nil {
				return err
			}
		}
		if in.IsSlugSource {
			if err := tx.Model(&models.CollectionField{}).
				Where("collection_id = ?", collectionID).
				Update("is_slug_source", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&field).Error
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

type FieldUpdate struct {
	Label        *string           `json:"label"`
	Type         *models.FieldType `json:"type"`
	Required     *bool             `json:"required"`
	IsTitle      *bool             `json:"is_title"`
	IsSlugSource *bool             `json:"is_slug_source"`
	Options      *datatypes.JSON   `json:"options"`
	DefaultValue *string           `json:"default_value"`
	SortOrder    *int              `json:"sort_order"`
}

func UpdateField(siteID, fieldID uint, in FieldUpdate) (*models.CollectionField, error) {
	var field models.CollectionField
	if err := database.DB.First(&field, fieldID).Error; err != nil {
		return nil, apperr.NotFound("field")
	}
	if !ownsCollection(siteID, field.CollectionID) {
		return nil, apperr.NotFound("field")
	}

	if in.Label != nil {
		field.Label = *in.Label
	}
	if in.Type != nil {
		field.Type = *in.Type
	}
	if in.Required != nil {
		field.Required = *in.Required
	}
	if in.IsTitle != nil {
		field.IsTitle = *in.IsTitle
	}
	if in.IsSlugSource != nil {
		field.IsSlugSource = *in.IsSlugSource
	}
	if in.Options != nil {
		field.Options = *in.Options
	}
	if in.DefaultValue != nil {
		field.DefaultValue = *in.DefaultValue
	}
	if in.SortOrder != nil {
		field.SortOrder = *in.SortOrder
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if in.IsTitle != nil && *in.IsTitle {
			if err := tx.Model(&models.CollectionField{}).
				Where("collection_id = ? AND id != ?", field.CollectionID, field.ID).
				Update("is_title", false).Error; err != nil {
				return err
			}
		}
		if in.IsSlugSource != nil && *in.IsSlugSource {
			if err := tx.Model(&models.CollectionField{}).
				Where("collection_id = ? AND id != ?", field.CollectionID, field.ID).
				Update("is_slug_source", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&field).Error
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func DeleteField(siteID, fieldID uint) error {
	var field models.CollectionField
	if err := database.DB.First(&field, fieldID).Error; err != nil {
		return apperr.NotFound("field")
	}
	if !ownsCollection(siteID, field.CollectionID) {
		return apperr.NotFound("field")
	}
	return database.DB.Unscoped().Delete(&field).Error
}

// CreateItem adds an item to a collection. The slug is derived from the
// is_slug_source field (then is_title) when not supplied, and collisions are
// resolved deterministically with a short suffix; creation never fails on a
// slug collision.
func CreateItem(collectionID uint, fieldData map[string]interface{}, slug string, status models.PublishStatus) (*models.CollectionItem, error) {
	var col models.Collection
	err := database.DB.Preload("Fields").First(&col, collectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("collection")
	}
	if err != nil {
		return nil, err
	}

	if fieldData == nil {
		fieldData = map[string]interface{}{}
	}
	applyFieldDefaults(col.Fields, fieldData)
	sanitizeRichFields(col.Fields, fieldData)

	if slug == "" {
		slug = deriveSlug(col.Fields, fieldData)
	}
	slug = utils.Slugify(slug)
	if slug == "" {
		slug = "item"
	}
	slug = dedupeItemSlug(collectionID, slug)

	raw, err := json.Marshal(fieldData)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = models.StatusDraft
	}

	item := models.CollectionItem{
		CollectionID: collectionID,
		Slug:         slug,
		Status:       status,
		FieldData:    datatypes.JSON(raw),
	}
	if status == models.StatusPublished {
		now := time.Now()
		item.PublishedFieldData = datatypes.JSON(raw)
		item.PublishedAt = &now
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func deriveSlug(fields []models.CollectionField, data map[string]interface{}) string {
	var titleKey string
	for _, f := range fields {
		if f.IsSlugSource {
			if v, ok := data[f.FieldID].(string); ok && v != "" {
				return v
			}
		}
		if f.IsTitle {
			titleKey = f.FieldID
		}
	}
	if titleKey != "" {
		if v, ok := data[titleKey].(string); ok {
			return v
		}
	}
	return ""
}

func dedupeItemSlug(collectionID uint, slug string) string {
	candidate := slug
	for {
		var count int64
		database.DB.Model(&models.CollectionItem{}).
			Where("collection_id = ? AND slug = ?", collectionID, candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = slug + "-" + utils.ShortSuffix()
	}
}

func applyFieldDefaults(fields []models.CollectionField, data map[string]interface{}) {
	for _, f := range fields {
		if f.DefaultValue == "" {
			continue
		}
		if v, exists := data[f.FieldID]; !exists || v == nil || v == "" {
			data[f.FieldID] = f.DefaultValue
		}
	}
}

func sanitizeRichFields(fields []models.CollectionField, data map[string]interface{}) {
	for _, f := range fields {
		if f.Type != models.FieldRichText {
			continue
		}
		if v, ok := data[f.FieldID].(string); ok {
			data[f.FieldID] = utils.SanitizeRichText(v)
		}
	}
}

// ownsCollection reports whether the collection belongs to the site. Every
// item and field lookup goes through it so one tenant can never address
// another tenant's content by global ID.
func ownsCollection(siteID, collectionID uint) bool {
	var count int64
	database.DB.Model(&models.Collection{}).
		Where("id = ? AND site_id = ?", collectionID, siteID).Count(&count)
	return count > 0
}

func GetItem(siteID, itemID uint) (*models.CollectionItem, error) {
	var item models.CollectionItem
	err := database.DB.First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("item")
	}
	if err != nil {
		return nil, err
	}
	if !ownsCollection(siteID, item.CollectionID) {
		return nil, apperr.NotFound("item")
	}
	return &item, nil
}

func ListItems(collectionID uint) ([]models.CollectionItem, error) {
	var items []models.CollectionItem
	err := database.DB.Where("collection_id = ?", collectionID).
		Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

// UpdateItem replaces the live draft values. The published snapshot is never
// touched here; only PublishItem copies drafts into it.
func UpdateItem(siteID, itemID uint, fieldData map[string]interface{}) (*models.CollectionItem, error) {
	item, err := GetItem(siteID, itemID)
	if err != nil {
		return nil, err
	}

	var col models.Collection
	if err := database.DB.Preload("Fields").First(&col, item.CollectionID).Error; err != nil {
		return nil, err
	}
	sanitizeRichFields(col.Fields, fieldData)

	raw, err := json.Marshal(fieldData)
	if err != nil {
		return nil, err
	}

	item.FieldData = datatypes.JSON(raw)
	if err := database.DB.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// PublishItem atomically marks the item published, freezes the current draft
// as the public snapshot and stamps publishedAt. Publishing an already
// published item refreshes the snapshot.
func PublishItem(siteID, itemID uint) (*models.CollectionItem, error) {
	item, err := GetItem(siteID, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := make(datatypes.JSON, len(item.FieldData))
	copy(snapshot, item.FieldData)

	err = database.DB.Model(item).Updates(map[string]interface{}{
		"status":               models.StatusPublished,
		"published_field_data": snapshot,
		"published_at":         now,
	}).Error
	if err != nil {
		return nil, err
	}

	item.Status = models.StatusPublished
	item.PublishedFieldData = snapshot
	item.PublishedAt = &now
	return item, nil
}

// UnpublishItem flips the item back to draft. The last published snapshot is
// deliberately retained so public rendering must gate on status, not on the
// snapshot's presence.
func UnpublishItem(siteID, itemID uint) (*models.CollectionItem, error) {
	item, err := GetItem(siteID, itemID)
	if err != nil {
		return nil, err
	}

	if err := database.DB.Model(item).Update("status", models.StatusDraft).Error; err != nil {
		return nil, err
	}
	item.Status = models.StatusDraft
	return item, nil
}

// DeleteItem removes the row for good. Item slugs sit under a hard unique
// index, so a soft delete would block the slug forever.
func DeleteItem(siteID, itemID uint) error {
	item, err := GetItem(siteID, itemID)
	if err != nil {
		return err
	}
	return database.DB.Unscoped().Delete(item).Error
}

type BulkResult struct {
	ID    uint   `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkPublish applies PublishItem to each member independently; one failure
// does not stop or roll back the rest. Callers needing atomicity must check
// results per item.
func BulkPublish(siteID uint, itemIDs []uint) []BulkResult {
	results := make([]BulkResult, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, err := PublishItem(siteID, id); err != nil {
			results = append(results, BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results
}

func BulkDelete(siteID uint, itemIDs []uint) []BulkResult {
	results := make([]BulkResult, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := DeleteItem(siteID, id); err != nil {
			results = append(results, BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results
}

// PublicItem is the consumer-facing view of a published item: always the
// frozen snapshot, never the live draft.
type PublicItem struct {
	Slug        string                 `json:"slug"`
	FieldData   map[string]interface{} `json:"field_data"`
	PublishedAt *time.Time             `json:"published_at"`
}

func PublishedItem(collectionID uint, slug string) (*PublicItem, error) {
	var item models.CollectionItem
	err := database.DB.
		Where("collection_id = ? AND slug = ? AND status = ?", collectionID, slug, models.StatusPublished).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("item")
	}
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if len(item.PublishedFieldData) > 0 {
		_ = json.Unmarshal(item.PublishedFieldData, &data)
	}
	return &PublicItem{Slug: item.Slug, FieldData: data, PublishedAt: item.PublishedAt}, nil
}

func PublishedItems(collectionID uint) ([]PublicItem, error) {
	var items []models.CollectionItem
	err := database.DB.
		Where("collection_id = ? AND status = ?", collectionID, models.StatusPublished).
		Order("published_at DESC, id DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	out := make([]PublicItem, 0, len(items))
	for _, item := range items {
		var data map[string]interface{}
		if len(item.PublishedFieldData) > 0 {
			_ = json.Unmarshal(item.PublishedFieldData, &data)
		}
		out = append(out, PublicItem{Slug: item.Slug, FieldData: data, PublishedAt: item.PublishedAt})
	}
	return out, nil
}
