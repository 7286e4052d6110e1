package handlers

import (
	"net/http"
	"vidshare/internal/middleware"
	"vidshare/internal/store"
	"vidshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// fail stops the request with a client-facing message
func fail(c *gin.Context, status int, message string) {
	middleware.Fail(c, middleware.NewError(status, message))
}

// failErr maps a store error: missing rows become 404 with notFoundMsg, anything else is a 500.
func failErr(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, notFoundMsg)
		return
	}
	middleware.Fail(c, err)
}

// pathID parses a numeric path param. Anything unparseable is answered like a missing row.
func pathID(c *gin.Context, name, notFoundMsg string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		fail(c, http.StatusNotFound, notFoundMsg)
	}
	return id, ok
}

func empty(c *gin.Context, status int) {
	c.JSON(status, gin.H{})
}
