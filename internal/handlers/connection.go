package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/services"
)

type ConnectionHandler struct {
	connectionService services.ConnectionService
}

func NewConnectionHandler(connectionService services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

type createConnectionRequest struct {
	FollowerID  *uint `json:"follower_id" binding:"required"`
	FollowingID *uint `json:"following_id" binding:"required"`
}

func (ch *ConnectionHandler) List(c *gin.Context) {
	connections, err := ch.connectionService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"connections": connections})
}

func (ch *ConnectionHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	connection, err := ch.connectionService.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, connection)
}

func (ch *ConnectionHandler) Create(c *gin.Context) {
	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, err)
		return
	}
	connection, err := ch.connectionService.Create(c.Request.Context(), *req.FollowerID, *req.FollowingID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, connection)
}

func (ch *ConnectionHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	connection, err := ch.connectionService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, connection)
}
