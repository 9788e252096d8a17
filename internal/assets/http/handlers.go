package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/go-contract-backend/internal/assets"
)

// maxUploadBytes caps icon uploads at 2 MiB.
const maxUploadBytes = 2 << 20

type Handler struct {
	uploader *assets.Uploader
}

func NewHandler(uploader *assets.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

func (h *Handler) upload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "asset storage not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file field required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file"})
		return
	}
	defer src.Close()

	url, err := h.uploader.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "url": url})
}

// Register mounts the asset routes on the given group.
func Register(g *gin.RouterGroup, h *Handler) {
	g.POST("/icons", h.upload)
}
