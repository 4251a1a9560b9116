package block

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Node is one typed unit of renderable page content. Container types nest
// further nodes under Children; order is significant and preserved exactly.
type Node struct {
	Type     string                 `json:"type"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []Node                 `json:"children,omitempty"`
}

// DecodeTree parses a stored page content column into a node tree. Empty or
// missing content decodes to an empty tree rather than an error.
func DecodeTree(raw datatypes.JSON) ([]Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var nodes []Node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// EncodeTree serializes a node tree for storage.
func EncodeTree(nodes []Node) (datatypes.JSON, error) {
	if nodes == nil {
		nodes = []Node{}
	}
	raw, err := json.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (n Node) str(key, fallback string) string {
	if v, ok := n.Props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (n Node) list(key string) []map[string]interface{} {
	raw, ok := n.Props[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func mapStr(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
