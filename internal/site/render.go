package site

import (
	"encoding/json"
	"errors"

	"github.com/campushq/sitebuilder/internal/block"
	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"gorm.io/gorm"
)

// RenderPage decodes a page's block tree, resolves data-bound blocks
// (cms-list, form-embed) and renders it against the site's theme. When
// published is true, collection blocks serve the frozen published snapshots;
// the editor preview serves live drafts.
func RenderPage(siteID uint, p *models.Page, published bool) (string, error) {
	nodes, err := block.DecodeTree(p.Content)
	if err != nil {
		return "", err
	}

	nodes = bindDynamicBlocks(siteID, nodes, published)

	var t *models.Theme
	var row models.Theme
	err = database.DB.Where("site_id = ?", siteID).First(&row).Error
	if err == nil {
		t = &row
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return block.Render(nodes, t), nil
}

// bindDynamicBlocks returns a rebuilt tree with collection items and form
// definitions injected into node props, so the renderer itself stays pure.
func bindDynamicBlocks(siteID uint, nodes []block.Node, published bool) []block.Node {
	out := make([]block.Node, 0, len(nodes))
	for _, n := range nodes {
		bound := block.Node{Type: n.Type, Props: copyProps(n.Props)}
		switch n.Type {
		case "cms-list":
			bindCollectionItems(siteID, &bound, published)
		case "form-embed":
			bindFormFields(siteID, &bound)
		}
		if len(n.Children) > 0 {
			bound.Children = bindDynamicBlocks(siteID, n.Children, published)
		}
		out = append(out, bound)
	}
	return out
}

func copyProps(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func bindCollectionItems(siteID uint, n *block.Node, published bool) {
	slug, _ := n.Props["collection"].(string)
	if slug == "" {
		return
	}

	var col models.Collection
	err := database.DB.Preload("Fields").
		Where("site_id = ? AND slug = ?", siteID, slug).First(&col).Error
	if err != nil {
		return // unknown collection renders as an empty list
	}

	titleKey := "title"
	summaryKey := "summary"
	for _, f := range col.Fields {
		if f.IsTitle {
			titleKey = f.FieldID
		}
	}

	query := database.DB.Where("collection_id = ?", col.ID).Order("created_at DESC, id DESC")
	if published {
		query = query.Where("status = ?", models.StatusPublished)
	}
	var items []models.CollectionItem
	if err := query.Find(&items).Error; err != nil {
		return
	}

	bound := make([]interface{}, 0, len(items))
	for _, item := range items {
		data := itemData(item, published)
		entry := map[string]interface{}{
			"slug":  item.Slug,
			"title": strValue(data[titleKey]),
		}
		if summary := strValue(data[summaryKey]); summary != "" {
			entry["summary"] = summary
		}
		bound = append(bound, entry)
	}

	if n.Props == nil {
		n.Props = map[string]interface{}{"collection": slug}
	}
	n.Props["items"] = bound
}

// itemData picks the public snapshot for published serving and the live draft
// for previews. A published item always has a snapshot.
func itemData(item models.CollectionItem, published bool) map[string]interface{} {
	raw := item.FieldData
	if published && len(item.PublishedFieldData) > 0 {
		raw = item.PublishedFieldData
	}
	var data map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &data)
	}
	return data
}

func strValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func bindFormFields(siteID uint, n *block.Node) {
	if _, ok := n.Props["fields"]; ok {
		return // explicit fields on the node win
	}
	slug, _ := n.Props["form"].(string)
	if slug == "" {
		return
	}

	var form models.Form
	err := database.DB.Where("site_id = ? AND slug = ?", siteID, slug).First(&form).Error
	if err != nil || len(form.Fields) == 0 {
		return
	}

	var fields []interface{}
	if err := json.Unmarshal(form.Fields, &fields); err != nil {
		return
	}
	if n.Props == nil {
		n.Props = map[string]interface{}{"form": slug}
	}
	n.Props["fields"] = fields
	if form.SubmitLabel != "" {
		n.Props["submit_label"] = form.SubmitLabel
	}
}
