package block_test

import (
	"encoding/json"
	"testing"

	"github.com/campushq/sitebuilder/internal/block"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func testTheme() *models.Theme {
	t := models.DefaultTheme()
	t.PrimaryColor = "#ff0000"
	t.HeadingFont = "Georgia"
	return &t
}

func TestRenderDeterministic(t *testing.T) {
	nodes := []block.Node{
		{Type: "hero", Props: map[string]interface{}{"title": "Welcome", "subtitle": "Hi"}},
		{Type: "section", Children: []block.Node{
			{Type: "heading", Props: map[string]interface{}{"text": "About"}},
			{Type: "text", Props: map[string]interface{}{"text": "Hello"}},
		}},
	}
	theme := testTheme()

	first := block.Render(nodes, theme)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, block.Render(nodes, theme), "render must be deterministic")
	}
}

func TestKnownTypesRegistered(t *testing.T) {
	want := []string{
		"hero", "heading", "text", "image", "button", "section", "columns",
		"features-grid", "navigation", "footer", "form-embed", "cms-list",
		"spacer", "divider",
	}
	assert.ElementsMatch(t, want, block.KnownTypes())

	// every registered type must produce output for a minimally-propped node
	for _, typ := range want {
		out := block.Render([]block.Node{{Type: typ, Props: map[string]interface{}{
			"text": "x", "title": "x", "label": "x", "src": "/x.png",
		}}}, nil)
		assert.NotEmpty(t, out, "type %q rendered nothing", typ)
	}
}

func TestRenderSkipsUnknownTypes(t *testing.T) {
	nodes := []block.Node{
		{Type: "heading", Props: map[string]interface{}{"text": "Before"}},
		{Type: "holographic-carousel", Props: map[string]interface{}{"text": "nope"}},
		{Type: "heading", Props: map[string]interface{}{"text": "After"}},
	}

	out := block.Render(nodes, testTheme())

	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "After")
	assert.NotContains(t, out, "nope", "unknown node must render nothing")
}

func TestRenderNilThemeUsesDefaults(t *testing.T) {
	nodes := []block.Node{{Type: "heading", Props: map[string]interface{}{"text": "Hi"}}}

	out := block.Render(nodes, nil)

	defaults := models.DefaultTheme()
	assert.Contains(t, out, defaults.HeadingFont)
}

func TestRenderPropOverridesThemeToken(t *testing.T) {
	theme := testTheme()

	withOverride := block.Render([]block.Node{
		{Type: "hero", Props: map[string]interface{}{"title": "T", "background": "#00ff00"}},
	}, theme)
	withoutOverride := block.Render([]block.Node{
		{Type: "hero", Props: map[string]interface{}{"title": "T"}},
	}, theme)

	assert.Contains(t, withOverride, "#00ff00")
	assert.NotContains(t, withOverride, theme.PrimaryColor)
	assert.Contains(t, withoutOverride, theme.PrimaryColor, "missing prop falls back to theme token")
}

func TestRenderPreservesChildOrder(t *testing.T) {
	nodes := []block.Node{
		{Type: "section", Children: []block.Node{
			{Type: "heading", Props: map[string]interface{}{"text": "First"}},
			{Type: "heading", Props: map[string]interface{}{"text": "Second"}},
			{Type: "heading", Props: map[string]interface{}{"text": "Third"}},
		}},
	}

	out := block.Render(nodes, testTheme())

	first := indexOf(out, "First")
	second := indexOf(out, "Second")
	third := indexOf(out, "Third")
	assert.True(t, first < second && second < third, "children must render in stored order")
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	nodes := []block.Node{
		{Type: "hero", Props: map[string]interface{}{"title": "Keep"}},
	}
	theme := testTheme()
	themeBefore := *theme

	raw, _ := json.Marshal(nodes)
	block.Render(nodes, theme)
	rawAfter, _ := json.Marshal(nodes)

	assert.JSONEq(t, string(raw), string(rawAfter), "nodes must not be mutated")
	assert.Equal(t, themeBefore, *theme, "theme must not be mutated")
}

func TestRenderEscapesUserText(t *testing.T) {
	nodes := []block.Node{
		{Type: "heading", Props: map[string]interface{}{"text": `<script>alert("x")</script>`}},
	}

	out := block.Render(nodes, testTheme())

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderSanitizesRichText(t *testing.T) {
	nodes := []block.Node{
		{Type: "text", Props: map[string]interface{}{"html": `<p>ok</p><script>alert("x")</script>`}},
	}

	out := block.Render(nodes, testTheme())

	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderCMSListItems(t *testing.T) {
	nodes := []block.Node{
		{Type: "cms-list", Props: map[string]interface{}{
			"collection": "news",
			"base_path":  "/news",
			"items": []interface{}{
				map[string]interface{}{"slug": "first-day", "title": "First Day", "summary": "Doors open"},
				map[string]interface{}{"slug": "sports", "title": "Sports"},
			},
		}},
	}

	out := block.Render(nodes, testTheme())

	assert.Contains(t, out, `data-collection="news"`)
	assert.Contains(t, out, "First Day")
	assert.Contains(t, out, `href="/news/first-day"`)
	assert.Contains(t, out, "Sports")
	assert.Contains(t, out, "Doors open")
}

func TestRenderFormEmbedFields(t *testing.T) {
	nodes := []block.Node{
		{Type: "form-embed", Props: map[string]interface{}{
			"form": "contact",
			"fields": []interface{}{
				map[string]interface{}{"label": "Email", "name": "email", "type": "email"},
				map[string]interface{}{"label": "Message", "name": "message", "type": "textarea"},
			},
			"submit_label": "Send",
		}},
	}

	out := block.Render(nodes, testTheme())

	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, "<textarea")
	assert.Contains(t, out, "Send")
}

func TestDecodeTreeRoundTrip(t *testing.T) {
	raw := datatypes.JSON([]byte(`[{"type":"hero","props":{"title":"Hi"},"children":[{"type":"text","props":{"text":"a"}}]}]`))

	nodes, err := block.DecodeTree(raw)
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Equal(t, "hero", nodes[0].Type)
	assert.Len(t, nodes[0].Children, 1)

	encoded, err := block.EncodeTree(nodes)
	assert.NoError(t, err)

	again, err := block.DecodeTree(encoded)
	assert.NoError(t, err)
	assert.Equal(t, nodes, again)
}

func TestDecodeTreeEmpty(t *testing.T) {
	nodes, err := block.DecodeTree(nil)
	assert.NoError(t, err)
	assert.Nil(t, nodes)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
