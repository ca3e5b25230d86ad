package api

import (
	"net/http"
	"os"

	"hoaxify/hoax-api/storage"

	"github.com/gin-gonic/gin"
)

// Stored files never change under the same name, so clients may cache them
// for a year
const cacheControl = "public, max-age=31536000"

func (a *API) ServeProfileImage(c *gin.Context) {
	a.serveStored(c, storage.Profile)
}

func (a *API) ServeAttachment(c *gin.Context) {
	a.serveStored(c, storage.Attachment)
}

func (a *API) serveStored(c *gin.Context, kind storage.Kind) {
	name := c.Param("filename")

	if url, ok := a.Files.URL(kind, name); ok {
		c.Redirect(http.StatusFound, url)
		return
	}

	path, ok := a.Files.Path(kind, name)
	if !ok {
		fail(c, http.StatusNotFound, "File not found")
		return
	}

	if _, err := os.Stat(path); err != nil {
		fail(c, http.StatusNotFound, "File not found")
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.File(path)
}
