package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/2110503-CEDT68/be-project-68-group7/middlewares"
	"github.com/2110503-CEDT68/be-project-68-group7/services"
)

func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func currentIdentity(c *gin.Context) services.Identity {
	id, _ := middlewares.CurrentUserID(c)
	role, _ := middlewares.CurrentRole(c)
	return services.Identity{UserID: id, Role: role}
}
