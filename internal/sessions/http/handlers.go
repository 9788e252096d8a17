package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catdomain "github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/designer/render"
	"github.com/contractdesk/go-contract-backend/internal/sessions"
	tpldomain "github.com/contractdesk/go-contract-backend/internal/templates/domain"
)

type Handler struct {
	svc  *sessions.Service
	rctx render.Context
}

func NewHandler(svc *sessions.Service, rctx render.Context) *Handler {
	return &Handler{svc: svc, rctx: rctx}
}

// respondErr maps the designer's error taxonomy onto status codes: missing
// entities are 404, everything else is a 500.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
	case errors.Is(err, tpldomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
	case errors.Is(err, tpldomain.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "template version conflict"})
	case errors.Is(err, graph.ErrNodeNotFound), errors.Is(err, graph.ErrEdgeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, catdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

func (h *Handler) open(c *gin.Context) {
	var req openReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TemplateID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.Open(c.Request.Context(), req.TemplateID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": sess})
}

func (h *Handler) get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) close(c *gin.Context) {
	if err := h.svc.Close(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) drop(c *gin.Context) {
	var req dropReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	node, sess, err := h.svc.Drop(c.Request.Context(), c.Param("id"), req.Payload, req.Position)
	if err != nil {
		respondErr(c, err)
		return
	}
	if node == nil {
		// Malformed drag payload: a no-op, not an error.
		c.JSON(http.StatusOK, gin.H{"ok": true, "node": nil})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "node": node, "selection": sess.Selection})
}

func (h *Handler) connect(c *gin.Context) {
	var req connectReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Source == "" || req.Target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	edge, rejection, _, err := h.svc.Connect(c.Request.Context(), c.Param("id"),
		req.Source, req.Target, req.SourceHandle, req.TargetHandle)
	if err != nil {
		respondErr(c, err)
		return
	}
	if rejection != nil {
		// Expected domain outcome: no edge, reason for the canvas.
		c.JSON(http.StatusOK, gin.H{"ok": true, "edge": nil, "rejection": rejection})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "edge": edge})
}

func (h *Handler) move(c *gin.Context) {
	var req moveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if _, err := h.svc.Move(c.Request.Context(), c.Param("id"), c.Param("nodeId"), req.Position); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) editField(c *gin.Context) {
	var req fieldReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if _, err := h.svc.EditField(c.Request.Context(), c.Param("id"), c.Param("nodeId"), req.Field, req.Value); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) removeNode(c *gin.Context) {
	if _, err := h.svc.RemoveNode(c.Request.Context(), c.Param("id"), c.Param("nodeId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) removeEdge(c *gin.Context) {
	if _, err := h.svc.RemoveEdge(c.Request.Context(), c.Param("id"), c.Param("edgeId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) selectEntity(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.Select(c.Request.Context(), c.Param("id"), req.NodeID, req.EdgeID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "selection": sess.Selection})
}

func (h *Handler) renderViews(c *gin.Context) {
	views, err := h.svc.Render(c.Request.Context(), c.Param("id"), h.rctx)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "views": views})
}

func (h *Handler) validate(c *gin.Context) {
	report, err := h.svc.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "failures": report, "valid": len(report) == 0})
}

func (h *Handler) save(c *gin.Context) {
	t, sess, err := h.svc.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t, "session": sess})
}
