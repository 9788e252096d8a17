package http

import "github.com/gin-gonic/gin"

// Register mounts the template CRUD routes on the given group.
func Register(g *gin.RouterGroup, h *Handler) {
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.save)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/versions", h.history)
}
