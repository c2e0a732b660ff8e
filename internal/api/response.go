package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ecotimes/news-api/internal/apperr"
)

// The response envelope: success bodies are {"data": ...}, failures are
// {"error": {"kind", "message"}}. Storage and payment causes stay in
// the logs, never in the body.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	c.AbortWithStatusJSON(e.HTTPStatus(), gin.H{
		"error": gin.H{
			"kind":    string(e.Kind),
			"message": e.Message,
		},
	})
}
