package block

import (
	"strings"

	"github.com/campushq/sitebuilder/internal/models"
)

// renderFunc emits the markup for one node. Implementations read the node's
// props first and fall back to theme tokens for every visual property.
type renderFunc func(b *strings.Builder, n Node, t *models.Theme)

// registry is populated in init: the render funcs recurse back into it
// through renderNode, so a composite literal would form an initialization
// cycle.
var registry = map[string]renderFunc{}

func init() {
	registry["hero"] = renderHero
	registry["heading"] = renderHeading
	registry["text"] = renderText
	registry["image"] = renderImage
	registry["button"] = renderButton
	registry["section"] = renderSection
	registry["columns"] = renderColumns
	registry["features-grid"] = renderFeaturesGrid
	registry["navigation"] = renderNavigation
	registry["footer"] = renderFooter
	registry["form-embed"] = renderFormEmbed
	registry["cms-list"] = renderCMSList
	registry["spacer"] = renderSpacer
	registry["divider"] = renderDivider
}

// Register adds a node type to the registry. Unknown types are skipped at
// render time, so registration is only needed to make a type visible.
func Register(nodeType string, fn renderFunc) {
	registry[nodeType] = fn
}

// KnownTypes lists the registered node types.
func KnownTypes() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}
