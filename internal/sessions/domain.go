// Package sessions owns per-editor editing state: one session holds one
// in-memory TemplateDocument exclusively until it is saved back through
// template persistence. Sessions live in Redis with a TTL so abandoned
// editors age out.
package sessions

import (
	"errors"
	"time"

	"github.com/contractdesk/go-contract-backend/internal/designer/canvas"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
)

var ErrSessionNotFound = errors.New("editing session not found")

// Session is the persisted editing state. BaseVersion is the template
// version the session was opened against; it becomes the expectedVersion on
// save so concurrent editors surface as a version conflict, not silent
// overwrite.
type Session struct {
	SessionID   string                  `json:"session_id"`
	TemplateID  string                  `json:"template_id"`
	BaseVersion int                     `json:"base_version"`
	Document    *graph.TemplateDocument `json:"document"`
	Selection   canvas.Selection        `json:"selection"`
	Dirty       bool                    `json:"dirty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}
