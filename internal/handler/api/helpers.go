package api

import (
	"ticketapp/internal/domain/user"
	"ticketapp/internal/handler/middleware"
	"ticketapp/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func actor(c *gin.Context) (uuid.UUID, user.Role, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return id, role, true
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
