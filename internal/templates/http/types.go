package http

import "github.com/contractdesk/go-contract-backend/internal/designer/graph"

type createReq struct {
	Name string `json:"name"`
}

type saveReq struct {
	Document *graph.TemplateDocument `json:"document"`
	Version  int                     `json:"version"`
}
