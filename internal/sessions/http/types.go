package http

import "github.com/contractdesk/go-contract-backend/internal/designer/graph"

type openReq struct {
	TemplateID string `json:"template_id"`
}

type dropReq struct {
	Payload  string         `json:"payload"`
	Position graph.Position `json:"position"`
}

type connectReq struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

type moveReq struct {
	Position graph.Position `json:"position"`
}

type fieldReq struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type selectReq struct {
	NodeID string `json:"node_id,omitempty"`
	EdgeID string `json:"edge_id,omitempty"`
}
