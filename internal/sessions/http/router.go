package http

import "github.com/gin-gonic/gin"

// Register mounts the editing-session routes on the given group. Every
// canvas gesture is one route against one session.
func Register(g *gin.RouterGroup, h *Handler) {
	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.close)

	g.POST("/:id/drop", h.drop)
	g.POST("/:id/connect", h.connect)
	g.POST("/:id/nodes/:nodeId/move", h.move)
	g.POST("/:id/nodes/:nodeId/fields", h.editField)
	g.DELETE("/:id/nodes/:nodeId", h.removeNode)
	g.DELETE("/:id/edges/:edgeId", h.removeEdge)
	g.POST("/:id/select", h.selectEntity)

	g.GET("/:id/render", h.renderViews)
	g.POST("/:id/validate", h.validate)
	g.POST("/:id/save", h.save)
}
