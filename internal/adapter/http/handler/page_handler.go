package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// storeName is the storefront display name used by every page.
const storeName = "Emoto HI"

// PageHandler renders the storefront pages.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) render(c *gin.Context, page string) {
	c.HTML(http.StatusOK, page, gin.H{"Store": storeName})
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) { h.render(c, "index.html") }

// Products handles GET /products.
func (h *PageHandler) Products(c *gin.Context) { h.render(c, "products.html") }

// Checkout handles GET /checkout.
func (h *PageHandler) Checkout(c *gin.Context) { h.render(c, "checkout.html") }

// Gallery handles GET /gallery.
func (h *PageHandler) Gallery(c *gin.Context) { h.render(c, "gallery.html") }

// Videos handles GET /videos.
func (h *PageHandler) Videos(c *gin.Context) { h.render(c, "videos.html") }

// Contact handles GET /contact.
func (h *PageHandler) Contact(c *gin.Context) { h.render(c, "contact.html") }
