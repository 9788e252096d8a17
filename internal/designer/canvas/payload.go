package canvas

import (
	"encoding/json"
	"strings"
)

// DropPayload is the tuple the catalog panel serializes into the drag-and-
// drop data channel. Type is the catalog variant's nodeType.
type DropPayload struct {
	Type    string         `json:"type"`
	Label   string         `json:"label,omitempty"`
	Variant string         `json:"variant,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// ParseDropPayload decodes a drag payload. Returns ok=false for anything
// that cannot be a node-creation request: empty input, invalid JSON, or a
// payload without a type. Callers treat that as a no-op.
func ParseDropPayload(raw string) (DropPayload, bool) {
	var p DropPayload
	if strings.TrimSpace(raw) == "" {
		return p, false
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return DropPayload{}, false
	}
	if p.Type == "" {
		return DropPayload{}, false
	}
	return p, true
}
