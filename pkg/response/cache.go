package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// JSONWithCache sends a public, cacheable payload. Used by the read-only lesson catalog.
func JSONWithCache(c *gin.Context, status int, payload interface{}, maxAge int) {
	c.Header("Cache-Control", formatCacheControl(maxAge))
	c.JSON(status, payload)
}

// JSONNoStore sends a per-user payload that intermediaries must not keep.
func JSONNoStore(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

func formatCacheControl(maxAge int) string {
	if maxAge <= 0 {
		return "no-cache"
	}
	return "public, max-age=" + strconv.Itoa(maxAge)
}
