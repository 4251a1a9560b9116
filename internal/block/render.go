package block

import (
	"fmt"
	"html"
	"strings"

	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/utils"
)

// Render walks the node tree in order and produces an HTML fragment. It is
// pure: no I/O, no mutation of nodes or theme, identical input gives
// identical output. Nodes whose type is not registered are skipped so one
// broken block never blanks a page. A nil theme means hard-coded defaults.
func Render(nodes []Node, theme *models.Theme) string {
	if theme == nil {
		dt := models.DefaultTheme()
		theme = &dt
	}

	var b strings.Builder
	for _, n := range nodes {
		renderNode(&b, n, theme)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n Node, t *models.Theme) {
	fn, ok := registry[n.Type]
	if !ok {
		return
	}
	fn(b, n, t)
}

func renderChildren(b *strings.Builder, n Node, t *models.Theme) {
	for _, child := range n.Children {
		renderNode(b, child, t)
	}
}

func esc(s string) string {
	return html.EscapeString(s)
}

func shadowCSS(style models.ShadowStyle) string {
	switch style {
	case models.ShadowSubtle:
		return "0 1px 3px rgba(0,0,0,0.1)"
	case models.ShadowMedium:
		return "0 4px 12px rgba(0,0,0,0.15)"
	case models.ShadowStrong:
		return "0 12px 32px rgba(0,0,0,0.25)"
	default:
		return "none"
	}
}

func buttonCSS(n Node, t *models.Theme) string {
	color := n.str("color", t.PrimaryColor)
	radius := n.str("radius", t.ButtonRadius)
	style := models.ButtonStyle(n.str("style", string(t.ButtonStyle)))

	base := fmt.Sprintf("display:inline-block;padding:12px 24px;border-radius:%s;font-family:%s;text-decoration:none;",
		esc(radius), esc(t.BodyFont))

	switch style {
	case models.ButtonOutline:
		return base + fmt.Sprintf("background:transparent;color:%s;border:2px solid %s;", esc(color), esc(color))
	case models.ButtonGradient:
		return base + fmt.Sprintf("background:linear-gradient(135deg,%s,%s);color:#ffffff;border:none;",
			esc(color), esc(n.str("accent", t.AccentColor)))
	case models.ButtonGhost:
		return base + fmt.Sprintf("background:transparent;color:%s;border:none;", esc(color))
	default:
		return base + fmt.Sprintf("background:%s;color:#ffffff;border:none;", esc(color))
	}
}

func renderHero(b *strings.Builder, n Node, t *models.Theme) {
	bg := n.str("background", t.PrimaryColor)
	textColor := n.str("text_color", "#ffffff")

	fmt.Fprintf(b, `<section class="wb-hero" style="background:%s;color:%s;padding:96px 24px;text-align:center;">`,
		esc(bg), esc(textColor))
	fmt.Fprintf(b, `<div style="max-width:%s;margin:0 auto;">`, esc(n.str("width", t.ContainerWidth)))
	if title := n.str("title", ""); title != "" {
		fmt.Fprintf(b, `<h1 style="font-family:%s;font-size:48px;margin:0 0 16px;">%s</h1>`, esc(t.HeadingFont), esc(title))
	}
	if subtitle := n.str("subtitle", ""); subtitle != "" {
		fmt.Fprintf(b, `<p style="font-family:%s;font-size:20px;margin:0 0 32px;opacity:0.9;">%s</p>`, esc(t.BodyFont), esc(subtitle))
	}
	if label := n.str("cta_label", ""); label != "" {
		fmt.Fprintf(b, `<a href="%s" style="%s">%s</a>`, esc(n.str("cta_href", "#")), buttonCSS(n, t), esc(label))
	}
	renderChildren(b, n, t)
	b.WriteString(`</div></section>`)
}

func renderHeading(b *strings.Builder, n Node, t *models.Theme) {
	level := n.str("level", "h2")
	switch level {
	case "h1", "h2", "h3", "h4", "h5", "h6":
	default:
		level = "h2"
	}
	fmt.Fprintf(b, `<%s style="font-family:%s;color:%s;">%s</%s>`,
		level, esc(t.HeadingFont), esc(n.str("color", t.TextColor)), esc(n.str("text", "")), level)
}

func renderText(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<div class="wb-text" style="font-family:%s;color:%s;">`,
		esc(t.BodyFont), esc(n.str("color", t.TextColor)))
	if rich := n.str("html", ""); rich != "" {
		b.WriteString(utils.SanitizeRichText(rich))
	} else {
		fmt.Fprintf(b, `<p>%s</p>`, esc(n.str("text", "")))
	}
	b.WriteString(`</div>`)
}

func renderImage(b *strings.Builder, n Node, t *models.Theme) {
	src := n.str("src", "")
	if src == "" {
		return
	}
	fmt.Fprintf(b, `<img src="%s" alt="%s" style="max-width:100%%;border-radius:%s;" />`,
		esc(src), esc(n.str("alt", "")), esc(n.str("radius", t.CardRadius)))
}

func renderButton(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<a class="wb-button" href="%s" style="%s">%s</a>`,
		esc(n.str("href", "#")), buttonCSS(n, t), esc(n.str("label", "")))
}

func renderSection(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<section class="wb-section" style="background:%s;padding:%s;">`,
		esc(n.str("background", t.BackgroundColor)), esc(n.str("padding", "48px 24px")))
	fmt.Fprintf(b, `<div style="max-width:%s;margin:0 auto;">`, esc(n.str("width", t.ContainerWidth)))
	renderChildren(b, n, t)
	b.WriteString(`</div></section>`)
}

func renderColumns(b *strings.Builder, n Node, t *models.Theme) {
	gap := n.str("gap", "24px")
	fmt.Fprintf(b, `<div class="wb-columns" style="display:flex;gap:%s;flex-wrap:wrap;">`, esc(gap))
	for _, child := range n.Children {
		b.WriteString(`<div style="flex:1;min-width:240px;">`)
		renderNode(b, child, t)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

func renderFeaturesGrid(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<div class="wb-features" style="display:grid;grid-template-columns:repeat(auto-fit,minmax(260px,1fr));gap:24px;">`)
	for _, item := range n.list("items") {
		fmt.Fprintf(b, `<div style="background:%s;border-radius:%s;box-shadow:%s;padding:24px;">`,
			esc(n.str("card_background", t.SurfaceColor)), esc(t.CardRadius), shadowCSS(t.ShadowStyle))
		if icon := mapStr(item, "icon"); icon != "" {
			fmt.Fprintf(b, `<div style="font-size:32px;margin-bottom:12px;">%s</div>`, esc(icon))
		}
		fmt.Fprintf(b, `<h3 style="font-family:%s;color:%s;margin:0 0 8px;">%s</h3>`,
			esc(t.HeadingFont), esc(t.TextColor), esc(mapStr(item, "title")))
		fmt.Fprintf(b, `<p style="font-family:%s;color:%s;margin:0;">%s</p>`,
			esc(t.BodyFont), esc(t.MutedColor), esc(mapStr(item, "text")))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

func renderNavigation(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<nav class="wb-nav" style="background:%s;padding:16px 24px;display:flex;align-items:center;justify-content:space-between;">`,
		esc(n.str("background", t.BackgroundColor)))
	fmt.Fprintf(b, `<span style="font-family:%s;font-weight:bold;color:%s;">%s</span>`,
		esc(t.HeadingFont), esc(t.TextColor), esc(n.str("brand", "")))
	b.WriteString(`<div style="display:flex;gap:24px;">`)
	for _, link := range n.list("links") {
		fmt.Fprintf(b, `<a href="%s" style="font-family:%s;color:%s;text-decoration:none;">%s</a>`,
			esc(mapStr(link, "href")), esc(t.BodyFont), esc(t.TextColor), esc(mapStr(link, "label")))
	}
	b.WriteString(`</div></nav>`)
}

func renderFooter(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<footer class="wb-footer" style="background:%s;color:%s;padding:48px 24px;text-align:center;font-family:%s;">`,
		esc(n.str("background", t.SecondaryColor)), esc(n.str("text_color", "#ffffff")), esc(t.BodyFont))
	if text := n.str("text", ""); text != "" {
		fmt.Fprintf(b, `<p style="margin:0 0 16px;">%s</p>`, esc(text))
	}
	b.WriteString(`<div style="display:flex;gap:16px;justify-content:center;">`)
	for _, link := range n.list("links") {
		fmt.Fprintf(b, `<a href="%s" style="color:inherit;opacity:0.8;">%s</a>`,
			esc(mapStr(link, "href")), esc(mapStr(link, "label")))
	}
	b.WriteString(`</div>`)
	renderChildren(b, n, t)
	b.WriteString(`</footer>`)
}

func renderFormEmbed(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<form class="wb-form" data-form="%s" style="display:grid;gap:12px;max-width:480px;">`,
		esc(n.str("form", "")))
	for _, field := range n.list("fields") {
		label := mapStr(field, "label")
		name := mapStr(field, "name")
		kind := mapStr(field, "type")
		if kind == "" {
			kind = "text"
		}
		fmt.Fprintf(b, `<label style="font-family:%s;color:%s;">%s`, esc(t.BodyFont), esc(t.TextColor), esc(label))
		if kind == "textarea" {
			fmt.Fprintf(b, `<textarea name="%s" style="width:100%%;border-radius:%s;padding:8px;"></textarea>`,
				esc(name), esc(t.BorderRadius))
		} else {
			fmt.Fprintf(b, `<input type="%s" name="%s" style="width:100%%;border-radius:%s;padding:8px;" />`,
				esc(kind), esc(name), esc(t.BorderRadius))
		}
		b.WriteString(`</label>`)
	}
	fmt.Fprintf(b, `<button type="submit" style="%s">%s</button>`, buttonCSS(n, t), esc(n.str("submit_label", "Submit")))
	b.WriteString(`</form>`)
}

// renderCMSList renders collection items bound into the node's props by the
// caller (the renderer itself performs no I/O). Each item is a map with at
// least "title" and "slug".
func renderCMSList(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<div class="wb-cms-list" data-collection="%s" style="display:grid;gap:16px;">`,
		esc(n.str("collection", "")))
	base := strings.TrimRight(n.str("base_path", ""), "/")
	for _, item := range n.list("items") {
		slug := mapStr(item, "slug")
		fmt.Fprintf(b, `<a href="%s/%s" style="background:%s;border-radius:%s;box-shadow:%s;padding:20px;text-decoration:none;display:block;">`,
			esc(base), esc(slug), esc(t.SurfaceColor), esc(t.CardRadius), shadowCSS(t.ShadowStyle))
		fmt.Fprintf(b, `<h3 style="font-family:%s;color:%s;margin:0 0 8px;">%s</h3>`,
			esc(t.HeadingFont), esc(t.TextColor), esc(mapStr(item, "title")))
		if summary := mapStr(item, "summary"); summary != "" {
			fmt.Fprintf(b, `<p style="font-family:%s;color:%s;margin:0;">%s</p>`,
				esc(t.BodyFont), esc(t.MutedColor), esc(summary))
		}
		b.WriteString(`</a>`)
	}
	b.WriteString(`</div>`)
}

func renderSpacer(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<div class="wb-spacer" style="height:%s;"></div>`, esc(n.str("height", "32px")))
}

func renderDivider(b *strings.Builder, n Node, t *models.Theme) {
	fmt.Fprintf(b, `<hr style="border:none;border-top:1px solid %s;margin:24px 0;" />`,
		esc(n.str("color", t.MutedColor)))
}
