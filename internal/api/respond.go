package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every error leaves through one of these helpers so the body is always a
// JSON object with a single "error" field.

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// storageError reports an unclassified storage failure as a 500 with the
// raw error text in the body.
func storageError(c *gin.Context, err error) {
	abortWithError(c, http.StatusInternalServerError, err.Error())
}
