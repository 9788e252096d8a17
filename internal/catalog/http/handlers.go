package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
)

// Handler serves read-only catalog lookups and the connection pre-check the
// canvas uses while the user is dragging a connection.
type Handler struct {
	catalog *catalog.Catalog
	engine  *rules.Engine
}

func NewHandler(cat *catalog.Catalog, engine *rules.Engine) *Handler {
	return &Handler{catalog: cat, engine: engine}
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": h.catalog.Categories()})
}

func (h *Handler) blockByTag(c *gin.Context) {
	b, err := h.catalog.BlockByTag(c.Param("tag"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown block tag"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "block": b})
}

func (h *Handler) variant(c *gin.Context) {
	v, err := h.catalog.Variant(c.Param("nodeType"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown nodeType"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "variant": v})
}

func (h *Handler) connections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "connections": h.catalog.Connections()})
}

func (h *Handler) checkConnection(c *gin.Context) {
	source := c.Query("source")
	target := c.Query("target")
	if source == "" || target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "source and target are required"})
		return
	}

	valid := h.engine.IsValidConnection(source, target)
	resp := gin.H{"ok": true, "valid": valid}
	if !valid {
		resp["reason"] = h.engine.Reason(source, target)
	}
	c.JSON(http.StatusOK, resp)
}

// Register mounts the catalog routes on the given group.
func Register(g *gin.RouterGroup, h *Handler) {
	g.GET("/categories", h.categories)
	g.GET("/blocks/:tag", h.blockByTag)
	g.GET("/variants/:nodeType", h.variant)
	g.GET("/connections", h.connections)
	g.GET("/connections/check", h.checkConnection)
}
