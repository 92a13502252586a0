package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ltctrack/internal/services"
	"ltctrack/pkg/middleware"
	"ltctrack/pkg/utils"
)

// uuidParam reads a path id; a malformed one is answered with 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return nil, false
	}
	return &id, true
}

func identity(c *gin.Context) *services.Identity {
	return middleware.IdentityFrom(c)
}

// wantsJSON tells API callers apart from browser form posts.
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON ||
		strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
